// filepath: internal/media/cdn.go
package media

import "strings"

// deliveryTransform is the on-the-fly transformation the collaborator applies
// when it is inserted after the /upload/ segment: bounded 500x500 fill at
// automatic quality.
const deliveryTransform = "w_500,h_500,c_fill,q_auto"

// RewriteDeliveryURL rewrites a collaborator-hosted URL so the CDN serves the
// bounded preview directly. For video URLs the extension is swapped to .jpg,
// which makes the CDN return a poster frame.
func RewriteDeliveryURL(rawURL string, video bool) string {
	out := strings.Replace(rawURL, "/upload/", "/upload/"+deliveryTransform+"/", 1)

	if video || strings.Contains(rawURL, "/video/") {
		lastDot := strings.LastIndex(out, ".")
		if lastDot > strings.LastIndex(out, "/") {
			out = out[:lastDot] + ".jpg"
		} else {
			out += ".jpg"
		}
	}
	return out
}
