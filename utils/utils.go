// Package utils holds small byte/string conversions used by the process
// wiring.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// HexStringToByteArray parses a hex string into bytes. Spaces between
// byte pairs are ignored (other whitespace is not) and a leading "0x"/"0X" is stripped, so CLI input
// like "0x02 11 40" and "021140" both parse to the same three bytes.
func HexStringToByteArray(in string) ([]byte, error) {
	in = strings.TrimPrefix(strings.TrimPrefix(in, "0x"), "0X")
	in = strings.ReplaceAll(in, " ", "")

	if len(in)%2 != 0 {
		return nil, fmt.Errorf("hex string has an odd length: %v", in)
	}

	data := make([]byte, len(in)/2)
	for i := 0; i < len(in); i += 2 {
		byteVal, err := strconv.ParseUint(in[i:i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing hex byte at position %d: %v", i, err)
		}
		data[i/2] = byte(byteVal)
	}

	return data, nil
}
