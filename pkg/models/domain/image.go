package domain

// ImageCategory identifies which evidence group an attached image belongs to.
type ImageCategory string

const (
	CategoryPassportIDs   ImageCategory = "passport_ids"
	CategoryScammerPhotos ImageCategory = "scammer_photos"
	CategoryVictimIDs     ImageCategory = "victim_ids"
	CategoryOthers        ImageCategory = "others"
)

// EvidenceCategoryOrder is the fixed display order of evidence groups in the
// generated document. The assembler inserts a page break between groups.
var EvidenceCategoryOrder = []ImageCategory{
	CategoryPassportIDs,
	CategoryScammerPhotos,
	CategoryVictimIDs,
	CategoryOthers,
}

var categoryLabels = map[ImageCategory]string{
	CategoryPassportIDs:   "Scammers passport/ID:",
	CategoryScammerPhotos: "Photo of scammer (video available):",
	CategoryVictimIDs:     "Possible Victim / Money-Mule ID:",
	CategoryOthers:        "Others:",
}

// Label returns the section heading used for the category in the Evidence
// section of the document.
func (c ImageCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c) + ":"
}

// ImageAttachment is a raw image as attached by the operator. Data may be
// nil for placeholder rows that were never filled in; those are skipped
// during assembly.
type ImageAttachment struct {
	Name string
	Data []byte
}

// ImageSet groups attachments by evidence category, preserving the order
// images were attached in within each category.
type ImageSet map[ImageCategory][]ImageAttachment

// Count returns the number of attachments carrying actual image data.
func (s ImageSet) Count() int {
	n := 0
	for _, list := range s {
		for _, att := range list {
			if len(att.Data) > 0 {
				n++
			}
		}
	}
	return n
}
