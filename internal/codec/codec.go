// Package codec converts between the external YAML meeting document and the
// internal session model.
//
// Decoding is tolerant: every field is coerced or defaulted on its own, and
// only a document that is not a usable YAML mapping is rejected.
// Encoding is canonical: the same session always yields the same bytes.
package codec

// MediaType is the content type used for downloads and webhook uploads.
const MediaType = "text/yaml"

// Document field names, in canonical emission order.
const (
	fieldFSR         = "FSR"
	fieldProtocolant = "Protokollant"
	fieldGuests      = "WeiterePersonen"
	fieldDate        = "Date"
	fieldStart       = "Start"
	fieldEnd         = "Ende"
	fieldSession     = "Sitzung"
)

// Filename builds "<prefix>_<date>.yaml", using fallback when date is empty.
func Filename(prefix, date, fallback string) string {
	label := date
	if label == "" {
		label = fallback
	}
	return prefix + "_" + label + ".yaml"
}
