// Package utils provides lenient type conversion helpers.
//
// Replay metadata arrives as loosely typed JSON where numbers may be encoded
// as floats, strings or json.Number. The To* helpers collapse those into
// Go scalars and return the zero value when input cannot be parsed.
package utils
