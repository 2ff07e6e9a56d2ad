package bytecode

import "github.com/orion-lang/orion/op"

func copyInstructions(src []op.Code) []op.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make([]op.Code, len(src))
	copy(dst, src)
	return dst
}

func copyStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func copySlots(src []uint16) []uint16 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]uint16, len(src))
	copy(dst, src)
	return dst
}
