package validation

import "github.com/nmm-portal/nmm-api/internal/models"

type roleField struct {
	name    string
	message string
	value   func(d *models.RegistrationDraft) any
}

var (
	fieldAcademicQualification = roleField{"academicQualification", "Academic qualification is required",
		func(d *models.RegistrationDraft) any { return d.AcademicQualification }}
	fieldSchoolName = roleField{"schoolName", "School name is required",
		func(d *models.RegistrationDraft) any { return d.SchoolName }}
	fieldDesignation = roleField{"designation", "Designation is required",
		func(d *models.RegistrationDraft) any { return d.Designation }}
	fieldProfessionalExperience = roleField{"professionalExperience", "Professional experience is required",
		func(d *models.RegistrationDraft) any { return d.ProfessionalExperience }}
)

// Required role fields in declaration order. Reviewer and admin roles have none.
var roleFields = map[models.Role][]roleField{
	models.RoleMentee:     {fieldAcademicQualification, fieldSchoolName},
	models.RoleMentor:     {fieldDesignation, fieldProfessionalExperience},
	models.RoleSchoolHead: {fieldDesignation, fieldSchoolName},
}

// RequiredRoleFields returns the extra fields role must fill in
func RequiredRoleFields(role models.Role) []string {
	fields := roleFields[role]
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.name)
	}
	return out
}

// ValidateRegistrationForm checks a draft. Errors come in form order:
// base fields, address, then the role's own fields. Same input, same output.
func ValidateRegistrationForm(d *models.RegistrationDraft) ValidationErrors {
	errs := ValidationErrors{}

	if !ValidateRequired(d.Name) {
		errs.add("name", CodeRequired, "Name is required")
	}

	if !ValidateRequired(d.Email) {
		errs.add("email", CodeRequired, "Email is required")
	} else if !ValidateEmail(d.Email) {
		errs.add("email", CodeInvalid, "Invalid email format")
	}

	if !ValidateRequired(d.Mobile) {
		errs.add("mobile", CodeRequired, "Mobile number is required")
	} else if !ValidateMobile(d.Mobile) {
		errs.add("mobile", CodeInvalid, "Invalid mobile number format")
	}

	if !ValidateRequired(d.DateOfBirth) {
		errs.add("dateOfBirth", CodeRequired, "Date of birth is required")
	}

	if !ValidateRequired(d.Gender) {
		errs.add("gender", CodeRequired, "Gender is required")
	}

	if !ValidateRequired(string(d.Role)) {
		errs.add("role", CodeRequired, "Role is required")
	} else if !d.Role.IsValid() {
		errs.add("role", CodeInvalid, "Invalid role")
	}

	if !ValidateRequired(d.Address.State) {
		errs.add("address.state", CodeRequired, "State is required")
	}
	if !ValidateRequired(d.Address.District) {
		errs.add("address.district", CodeRequired, "District is required")
	}
	if !ValidateRequired(d.Address.Pincode) {
		errs.add("address.pincode", CodeRequired, "Pincode is required")
	}

	for _, f := range roleFields[d.Role] {
		if !ValidateRequired(f.value(d)) {
			errs.add(f.name, CodeRequired, f.message)
		}
	}

	if d.Password != "" && !ValidateMinLength(d.Password, MinPasswordLength) {
		errs.add("password", CodeInvalid, "Password must be at least 8 characters")
	}

	return errs
}

// MinPasswordLength applies only when a password is chosen at registration
const MinPasswordLength = 8
