package wxpay

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed gateway payload")

// DecodeXML flattens a wechat-pay v2 payload (<xml><k>v</k>...</xml>) into a
// string map. CDATA sections and surrounding whitespace are stripped by the
// tokenizer; nested elements are not expected by the protocol.
func DecodeXML(data []byte) (map[string]string, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	params := make(map[string]string)

	var key string
	var val strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				key = t.Name.Local
				val.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				val.Write(t)
			}
		case xml.EndElement:
			if depth == 2 && key != "" {
				params[key] = strings.TrimSpace(val.String())
				key = ""
			}
			depth--
		}
	}

	if len(params) == 0 {
		return nil, ErrMalformedPayload
	}
	return params, nil
}

// EncodeXML renders a parameter map as a v2 payload with CDATA-wrapped
// values. Keys are sorted so the output is deterministic.
func EncodeXML(params map[string]string) []byte {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteString("<xml>")
	for _, k := range keys {
		fmt.Fprintf(&b, "<%s><![CDATA[%s]]></%s>", k, params[k], k)
	}
	b.WriteString("</xml>")
	return b.Bytes()
}

// BuildAck renders the acknowledgment envelope the gateway requires in
// response to a notification. Anything it cannot parse as an ack triggers a
// redelivery, so callers must always answer with one of these.
func BuildAck(ok bool, msg string) []byte {
	code := "SUCCESS"
	if !ok {
		code = "FAIL"
	}
	return EncodeXML(map[string]string{
		"return_code": code,
		"return_msg":  msg,
	})
}
