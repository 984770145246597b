// Package format names the textual forms a device tree can be written in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f, f.Suffix())
//
// The device tree source form is produced by package encode; the YAML and
// JSON interchange forms are produced by package dictify.
//
// # Related Packages
//
//   - github.com/signadot/dts-format/encode - Encode a tree to source text
//   - github.com/signadot/dts-format/dictify - Interchange mapping
package format
