package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan  bool
	Lex   bool
	Build bool
	Merge bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("DTS_DEBUG_SCAN")
	d.Lex = boolEnv("DTS_DEBUG_LEX")
	d.Build = boolEnv("DTS_DEBUG_BUILD")
	d.Merge = boolEnv("DTS_DEBUG_MERGE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Lex() bool {
	return d.Lex
}
func Build() bool {
	return d.Build
}
func Merge() bool {
	return d.Merge
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
