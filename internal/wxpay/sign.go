package wxpay

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// Sign computes the WeChat-pay v2 parameter signature: empty values and any
// existing sign are dropped, keys are sorted lexicographically, joined as
// key=value pairs with '&', the API key is appended as &key=<secret>, and the
// MD5 digest is rendered as uppercase hex. The same routine signs outbound
// requests, client payment parameters and inbound notifications, so it has to
// match the gateway bit for bit.
func Sign(params map[string]string, apiKey string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "sign" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	b.WriteString("key=")
	b.WriteString(apiKey)

	sum := md5.Sum([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// VerifySign checks the sign field of an inbound parameter map.
func VerifySign(params map[string]string, apiKey string) bool {
	sign, ok := params["sign"]
	if !ok || sign == "" {
		return false
	}
	return Sign(params, apiKey) == sign
}
