package validation

import (
	"fmt"
	"strings"

	"github.com/nmm-portal/nmm-api/internal/models"
)

// ComposeRoleDetails builds the variant owned by the draft's role. Fields
// that belong to other roles are dropped. Roles without extra fields yield nil.
func ComposeRoleDetails(d *models.RegistrationDraft) (models.RoleDetails, error) {
	switch d.Role {
	case models.RoleMentee:
		return &models.MenteeDetails{
			AcademicQualification: strings.TrimSpace(d.AcademicQualification),
			YearsOfExperience:     deref(d.YearsOfExperience),
			SchoolName:            strings.TrimSpace(d.SchoolName),
			ClassesTaught:         d.ClassesTaught,
			Subjects:              d.Subjects,
			CurrentLevel:          d.CurrentLevel,
			LanguagePreferences:   d.LanguagePreferences,
			AreasOfMentoring:      d.AreasOfMentoring,
		}, nil
	case models.RoleMentor:
		return &models.MentorDetails{
			Designation:            strings.TrimSpace(d.Designation),
			ProfessionalExperience: deref(d.ProfessionalExperience),
			CurrentWorkStatus:      d.CurrentWorkStatus,
			LastOrganization:       d.LastOrganization,
			AreasOfMentoring:       d.AreasOfMentoring,
		}, nil
	case models.RoleSchoolHead:
		return &models.SchoolHeadDetails{
			Designation: strings.TrimSpace(d.Designation),
			SchoolName:  strings.TrimSpace(d.SchoolName),
			SchoolType:  d.SchoolType,
		}, nil
	case models.RoleReviewer, models.RoleStateAdmin, models.RoleMainAdmin:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown role %q", d.Role)
	}
}

// Compose validates the draft and builds the registration payload. The
// password, if any, is left for the caller to hash.
func Compose(d *models.RegistrationDraft) (*models.Registration, ValidationErrors) {
	if errs := ValidateRegistrationForm(d); len(errs) > 0 {
		return nil, errs
	}

	details, err := ComposeRoleDetails(d)
	if err != nil {
		return nil, ValidationErrors{{Field: "role", Code: CodeInvalid, Message: "Invalid role"}}
	}

	return &models.Registration{
		Role:        d.Role,
		Name:        strings.TrimSpace(d.Name),
		DateOfBirth: strings.TrimSpace(d.DateOfBirth),
		Gender:      strings.TrimSpace(d.Gender),
		Email:       strings.ToLower(strings.TrimSpace(d.Email)),
		Mobile:      strings.TrimSpace(d.Mobile),
		Address: models.Address{
			State:    strings.TrimSpace(d.Address.State),
			District: strings.TrimSpace(d.Address.District),
			Block:    strings.TrimSpace(d.Address.Block),
			Village:  strings.TrimSpace(d.Address.Village),
			Pincode:  strings.TrimSpace(d.Address.Pincode),
		},
		Details: details,
	}, nil
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
