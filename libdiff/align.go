package libdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// align matches two sequences of distinct keys, calling f once for each
// key with its index into from (or -1) and into to (or -1).  Keys are
// reported in the order of an edit script between the sequences; a key
// present in both but moved is matched where the script first reaches it.
func align(from, to []string, f func(key string, fi, ti int)) {
	keyMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeysTo(keyMap, runeMap, from)
	toRunes := mapKeysTo(keyMap, runeMap, to)
	fromIdx, toIdx := indexOf(from), indexOf(to)
	done := map[string]bool{}
	emit := func(k string, fi, ti int) {
		if done[k] {
			return
		}
		done[k] = true
		if fi == -1 {
			if i, ok := fromIdx[k]; ok {
				fi = i
			}
		}
		if ti == -1 {
			if i, ok := toIdx[k]; ok {
				ti = i
			}
		}
		f(k, fi, ti)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				emit(runeMap[r], fi, -1)
				fi++
			}
		case diffpatch.DiffEqual:
			for _, r := range diff.Text {
				emit(runeMap[r], fi, ti)
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				emit(runeMap[r], -1, ti)
				ti++
			}
		}
	}
}

func indexOf(keys []string) map[string]int {
	res := make(map[string]int, len(keys))
	for i, k := range keys {
		res[k] = i
	}
	return res
}

// mapKeysTo assigns each distinct key a rune in the private use area so
// that runes never collide with surrogates.
func mapKeysTo(m map[string]rune, im map[rune]string, keys []string) []rune {
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(0xF0000 + len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return rs
}
