package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RegistrationDraft is the in-progress registration form. It is mutated
// field by field and discarded after a successful submit.
type RegistrationDraft struct {
	Role        Role    `json:"role"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth"`
	Gender      string  `json:"gender"`
	Email       string  `json:"email"`
	Mobile      string  `json:"mobile"`
	Address     Address `json:"address"`
	Password    string  `json:"password,omitempty"`

	// Role-conditional fields; only the ones owned by Role are read
	AcademicQualification  string   `json:"academicQualification,omitempty"`
	YearsOfExperience      *int     `json:"yearsOfExperience,omitempty"`
	SchoolName             string   `json:"schoolName,omitempty"`
	ClassesTaught          []string `json:"classesTaught,omitempty"`
	Subjects               []string `json:"subjects,omitempty"`
	CurrentLevel           string   `json:"currentLevel,omitempty"`
	LanguagePreferences    []string `json:"languagePreferences,omitempty"`
	Designation            string   `json:"designation,omitempty"`
	AreasOfMentoring       []string `json:"areasOfMentoring,omitempty"`
	ProfessionalExperience *int     `json:"professionalExperience,omitempty"`
	CurrentWorkStatus      string   `json:"currentWorkStatus,omitempty"`
	LastOrganization       string   `json:"lastOrganization,omitempty"`
	SchoolType             string   `json:"schoolType,omitempty"`
}

// SetField assigns one field addressed by its dot-path ("name",
// "address.state"). List fields take every value; scalar fields take the
// first. An empty numeric value clears the field.
func (d *RegistrationDraft) SetField(path string, values ...string) error {
	first := ""
	if len(values) > 0 {
		first = values[0]
	}

	if sub, ok := strings.CutPrefix(path, "address."); ok {
		return d.Address.setField(sub, first)
	}

	switch path {
	case "role":
		d.Role = Role(first)
	case "name":
		d.Name = first
	case "dateOfBirth":
		d.DateOfBirth = first
	case "gender":
		d.Gender = first
	case "email":
		d.Email = first
	case "mobile":
		d.Mobile = first
	case "password":
		d.Password = first
	case "academicQualification":
		d.AcademicQualification = first
	case "yearsOfExperience":
		return setInt(&d.YearsOfExperience, path, first)
	case "schoolName":
		d.SchoolName = first
	case "classesTaught":
		d.ClassesTaught = compact(values)
	case "subjects":
		d.Subjects = compact(values)
	case "currentLevel":
		d.CurrentLevel = first
	case "languagePreferences":
		d.LanguagePreferences = compact(values)
	case "designation":
		d.Designation = first
	case "areasOfMentoring":
		d.AreasOfMentoring = compact(values)
	case "professionalExperience":
		return setInt(&d.ProfessionalExperience, path, first)
	case "currentWorkStatus":
		d.CurrentWorkStatus = first
	case "lastOrganization":
		d.LastOrganization = first
	case "schoolType":
		d.SchoolType = first
	default:
		return fmt.Errorf("unknown registration field %q", path)
	}
	return nil
}

func (a *Address) setField(name, value string) error {
	switch name {
	case "state":
		a.State = value
	case "district":
		a.District = value
	case "block":
		a.Block = value
	case "village":
		a.Village = value
	case "pincode":
		a.Pincode = value
	default:
		return fmt.Errorf("unknown registration field %q", "address."+name)
	}
	return nil
}

func setInt(dst **int, path, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("field %q must be a whole number", path)
	}
	*dst = &n
	return nil
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IdentityKey identifies the person a draft is for: normalized email and mobile
func (d *RegistrationDraft) IdentityKey() string {
	return strings.ToLower(strings.TrimSpace(d.Email)) + "|" + strings.TrimSpace(d.Mobile)
}

// FilePurpose names a registration upload slot
type FilePurpose string

const (
	FilePhoto               FilePurpose = "photo"
	FileGovtID              FilePurpose = "govtId"
	FileCaseStudy           FilePurpose = "caseStudy"
	FileVideoTestimonial    FilePurpose = "videoTestimonial"
	FileSupportingDocuments FilePurpose = "supportingDocuments"
)

// FilePurposes lists the upload slots in form order
var FilePurposes = []FilePurpose{FilePhoto, FileGovtID, FileCaseStudy, FileVideoTestimonial, FileSupportingDocuments}

// FileHandle is one selected file
type FileHandle struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// FileSelection maps a purpose to its ordered files. It lives beside the
// draft and is merged into the payload only at submit time.
type FileSelection map[FilePurpose][]FileHandle

// Add appends a file under purpose
func (s FileSelection) Add(purpose FilePurpose, f FileHandle) {
	s[purpose] = append(s[purpose], f)
}

// Primary returns the first file selected for purpose
func (s FileSelection) Primary(purpose FilePurpose) (FileHandle, bool) {
	files := s[purpose]
	if len(files) == 0 {
		return FileHandle{}, false
	}
	return files[0], true
}

// Registration is the composed, validated payload handed to the user store.
// It can only be built by the validation composer.
type Registration struct {
	Role         Role
	Name         string
	DateOfBirth  string
	Gender       string
	Email        string
	Mobile       string
	Address      Address
	Details      RoleDetails
	Photo        string
	PasswordHash string
}

// RegisterResult is returned to the registration form
type RegisterResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}
