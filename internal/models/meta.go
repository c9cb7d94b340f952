package models

// Reference lists served to the forms

var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jammu and Kashmir", "Jharkhand", "Karnataka", "Kerala",
	"Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha",
	"Punjab", "Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttarakhand",
	"Uttar Pradesh", "West Bengal",
}

var Subjects = []string{
	"Mathematics", "Science", "English", "Hindi", "Social Studies", "Physics", "Chemistry",
	"Biology", "Computer Science", "Physical Education", "Arts", "Music", "Commerce",
	"Economics", "History", "Geography",
}

var MentoringAreas = []string{
	"Classroom Management", "Curriculum Development", "Assessment Strategies",
	"Technology Integration", "Student Engagement", "Leadership Development",
	"Professional Development", "Special Education", "Language Teaching", "STEM Education",
	"Art Education", "Sports & Physical Education",
}

var Languages = []string{
	"English", "Hindi", "Bengali", "Telugu", "Marathi", "Tamil", "Gujarati", "Urdu", "Kannada",
	"Odia", "Malayalam", "Punjabi",
}

var SchoolTypes = []string{"Government", "Aided", "Unaided", "Central Government", "Private"}

var Genders = []string{"Male", "Female", "Other"}

// RoleInfo describes one role for the role pickers
type RoleInfo struct {
	Value       Role   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	SelfService bool   `json:"selfService"`
}

// Meta is the reference data payload
type Meta struct {
	Roles          []RoleInfo `json:"roles"`
	States         []string   `json:"states"`
	Subjects       []string   `json:"subjects"`
	MentoringAreas []string   `json:"mentoringAreas"`
	Languages      []string   `json:"languages"`
	SchoolTypes    []string   `json:"schoolTypes"`
	Genders        []string   `json:"genders"`
	FilePurposes   []string   `json:"filePurposes"`
}

// BuildMeta assembles the reference data
func BuildMeta() Meta {
	selfService := map[Role]bool{}
	for _, r := range SelfServiceRoles {
		selfService[r] = true
	}

	roles := make([]RoleInfo, 0, len(AllRoles))
	for _, r := range AllRoles {
		roles = append(roles, RoleInfo{Value: r, Label: r.Label(), Description: r.Description(), SelfService: selfService[r]})
	}

	purposes := make([]string, 0, len(FilePurposes))
	for _, p := range FilePurposes {
		purposes = append(purposes, string(p))
	}

	return Meta{
		Roles:          roles,
		States:         States,
		Subjects:       Subjects,
		MentoringAreas: MentoringAreas,
		Languages:      Languages,
		SchoolTypes:    SchoolTypes,
		Genders:        Genders,
		FilePurposes:   purposes,
	}
}
