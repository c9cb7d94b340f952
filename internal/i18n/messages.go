package i18n

// Message keys for parameterised and submit-level messages. Field messages
// are keyed by their English text.
const (
	KeyFileTooLarge = "file.too_large"
	KeyFileType     = "file.file_type"
)

var englishMessages = map[string]string{
	KeyFileTooLarge: "File {0} exceeds {1}MB size limit",
	KeyFileType:     "File {0} type not allowed",
}

var hindiMessages = map[string]string{
	"Name is required":                       "नाम आवश्यक है",
	"Email is required":                      "ईमेल आवश्यक है",
	"Invalid email format":                   "अमान्य ईमेल प्रारूप",
	"Mobile number is required":              "मोबाइल नंबर आवश्यक है",
	"Invalid mobile number format":           "अमान्य मोबाइल नंबर प्रारूप",
	"Date of birth is required":              "जन्म तिथि आवश्यक है",
	"Gender is required":                     "लिंग आवश्यक है",
	"Role is required":                       "भूमिका आवश्यक है",
	"Invalid role":                           "अमान्य भूमिका",
	"State is required":                      "राज्य आवश्यक है",
	"District is required":                   "ज़िला आवश्यक है",
	"Pincode is required":                    "पिनकोड आवश्यक है",
	"Academic qualification is required":     "शैक्षणिक योग्यता आवश्यक है",
	"School name is required":                "विद्यालय का नाम आवश्यक है",
	"Designation is required":                "पदनाम आवश्यक है",
	"Professional experience is required":    "व्यावसायिक अनुभव आवश्यक है",
	"Password must be at least 8 characters": "पासवर्ड कम से कम 8 अक्षरों का होना चाहिए",
	"Email or mobile number is required":     "ईमेल या मोबाइल नंबर आवश्यक है",
	"Password is required":                   "पासवर्ड आवश्यक है",
	"Role selection is required":             "भूमिका का चयन आवश्यक है",
	"Only one file can be uploaded":          "केवल एक फ़ाइल अपलोड की जा सकती है",
	"Unknown upload field":                   "अज्ञात अपलोड फ़ील्ड",

	"User already exists with this email or mobile": "इस ईमेल या मोबाइल से उपयोगकर्ता पहले से मौजूद है",
	"Registration failed. Please try again.":        "पंजीकरण विफल रहा। कृपया पुनः प्रयास करें।",
	"Invalid credentials or role":                   "अमान्य क्रेडेंशियल या भूमिका",
	"Login failed. Please try again.":               "लॉगिन विफल रहा। कृपया पुनः प्रयास करें।",
	"Invalid or expired OTP":                        "अमान्य या समाप्त ओटीपी",
	"A submission is already in progress":           "एक सबमिशन पहले से प्रगति में है",
	"Authentication required":                       "प्रमाणीकरण आवश्यक है",
	"Validation failed":                             "सत्यापन विफल रहा",
	"Access denied":                                 "पहुँच अस्वीकृत",
	"Not found":                                     "नहीं मिला",
	"Title is required":                             "शीर्षक आवश्यक है",
	"Description is required":                       "विवरण आवश्यक है",
	"Conflict":                                      "विरोधाभास",
	"Invalid request body":                          "अमान्य अनुरोध",
	"Rating must be between 1 and 5":                "रेटिंग 1 से 5 के बीच होनी चाहिए",
	"File is required":                              "फ़ाइल आवश्यक है",

	KeyFileTooLarge: "फ़ाइल {0} {1}MB की आकार सीमा से अधिक है",
	KeyFileType:     "फ़ाइल {0} का प्रकार अनुमत नहीं है",
}

// Binding tag texts for Hindi; English comes from the validator's defaults
var hindiTagMessages = map[string]string{
	"required": "{0} आवश्यक है",
	"email":    "{0} एक मान्य ईमेल होना चाहिए",
	"mobile":   "{0} एक मान्य मोबाइल नंबर होना चाहिए",
	"role":     "{0} एक मान्य भूमिका होनी चाहिए",
	"notblank": "{0} खाली नहीं हो सकता",
	"oneof":    "{0} इनमें से एक होना चाहिए: {1}",
	"min":      "{0} कम से कम {1} होना चाहिए",
	"max":      "{0} अधिकतम {1} हो सकता है",
}

var englishTagMessages = map[string]string{
	"mobile":   "{0} must be a valid mobile number",
	"role":     "{0} must be a valid role",
	"notblank": "{0} cannot be blank",
}
