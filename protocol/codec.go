// Package protocol implements the textual wire grammar of the broker.
//
// Each frame is TYPE#PARAM1#PARAM2. Splitting stops after the second
// delimiter, so PARAM2 may contain further '#' characters unescaped. This is
// workable only because PARAM2 is always the last field; keeping that
// behavior is a wire-compatibility requirement.
package protocol

import "strings"

// Delimiter separates the three frame fields.
const Delimiter = "#"

// Encode joins the three fields into one frame. Param2 is copied
// byte-for-byte with no escaping, even if it contains the delimiter.
func Encode(msgType, param1, param2 string) string {
	return msgType + Delimiter + param1 + Delimiter + param2
}

// Decode splits a raw frame into (type, param1, param2), limited to three
// fields. Type and param1 are trimmed of surrounding whitespace, param2 is
// returned untrimmed. Blank input degrades to three empty strings; the codec
// itself never fails.
func Decode(raw string) (msgType, param1, param2 string) {
	if strings.TrimSpace(raw) == "" {
		return "", "", ""
	}
	parts := strings.SplitN(raw, Delimiter, 3)
	msgType = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		param1 = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		param2 = parts[2]
	}
	return msgType, param1, param2
}
