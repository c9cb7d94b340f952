package validation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/nmm-portal/nmm-api/internal/models"
)

// FileConstraint limits what may be uploaded for one purpose
type FileConstraint struct {
	Accept   []string
	MaxMB    float64
	Multiple bool
}

// FileConstraints per registration upload slot
var FileConstraints = map[models.FilePurpose]FileConstraint{
	models.FilePhoto:               {Accept: []string{"image/*"}, MaxMB: 2},
	models.FileGovtID:              {Accept: []string{"pdf", "image/*"}, MaxMB: 5},
	models.FileCaseStudy:           {Accept: []string{"pdf", "msword", "officedocument"}, MaxMB: 10},
	models.FileVideoTestimonial:    {Accept: []string{"video/*"}, MaxMB: 50},
	models.FileSupportingDocuments: {Accept: []string{"pdf", "msword", "officedocument", "image/*"}, MaxMB: 10, Multiple: true},
}

// ValidateFiles checks every selected file against its purpose. Each
// failing purpose reports one combined message.
func ValidateFiles(files models.FileSelection) ValidationErrors {
	errs := ValidationErrors{}

	for _, purpose := range models.FilePurposes {
		selected := files[purpose]
		if len(selected) == 0 {
			continue
		}
		c := FileConstraints[purpose]
		field := string(purpose)

		if !c.Multiple && len(selected) > 1 {
			errs.add(field, CodeTooMany, "Only one file can be uploaded")
			continue
		}

		for _, f := range selected {
			if !ValidateFileSize(f, c.MaxMB) {
				mb := formatMB(c.MaxMB)
				errs.addf(field, CodeTooLarge, fmt.Sprintf("File %s exceeds %sMB size limit", f.Name, mb), f.Name, mb)
				break
			}
			if !ValidateFileType(f, c.Accept) {
				errs.addf(field, CodeFileType, fmt.Sprintf("File %s type not allowed", f.Name), f.Name)
				break
			}
		}
	}

	var unknown []string
	for purpose := range files {
		if _, ok := FileConstraints[purpose]; !ok {
			unknown = append(unknown, string(purpose))
		}
	}
	sort.Strings(unknown)
	for _, field := range unknown {
		errs.add(field, CodeInvalid, "Unknown upload field")
	}

	return errs
}

func formatMB(mb float64) string {
	return strconv.FormatFloat(mb, 'f', -1, 64)
}
