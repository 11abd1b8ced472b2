package casing

// Convert rewrites ident in the target style. The words of ident are found with
// the strategy matching its detected style, so conversion never fails on input;
// it fails only when target is not a strict style.
func Convert(ident string, target Style) (string, error) {
	return Join(Split(ident), target)
}
