package memory

import (
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedUsers() []*models.User {
	created := mustTime("2024-01-01T00:00:00Z")
	return []*models.User{
		{
			ID:          "1",
			Email:       "mentee@example.com",
			Mobile:      "9876543210",
			Name:        "Priya Sharma",
			Role:        models.RoleMentee,
			DateOfBirth: "1990-05-15",
			Gender:      "Female",
			Address: &models.Address{
				State: "Delhi", District: "Central Delhi", Block: "Connaught Place", Pincode: "110001",
			},
			Details: &models.MenteeDetails{
				AcademicQualification: "M.A., B.Ed",
				YearsOfExperience:     6,
				SchoolName:            "Government Senior Secondary School, Connaught Place",
				Subjects:              []string{"English", "Social Studies"},
			},
			IsActive:  true,
			CreatedAt: created,
		},
		{
			ID:          "2",
			Email:       "mentor@example.com",
			Mobile:      "9876543211",
			Name:        "Dr. Rajesh Kumar",
			Role:        models.RoleMentor,
			DateOfBirth: "1980-03-20",
			Gender:      "Male",
			Address: &models.Address{
				State: "Maharashtra", District: "Mumbai", Block: "Andheri", Pincode: "400001",
			},
			Details: &models.MentorDetails{
				Designation:            "Senior Lecturer",
				ProfessionalExperience: 18,
				CurrentWorkStatus:      "Working",
				AreasOfMentoring:       []string{"Classroom Management", "Assessment Strategies"},
			},
			IsActive:  true,
			CreatedAt: created,
		},
	}
}

func seedSessions() []*models.Session {
	return []*models.Session{
		{
			ID:          "1",
			Title:       "Effective Classroom Management Strategies",
			Description: "Learn proven techniques for maintaining discipline and engagement",
			MentorID:    "2",
			MentorName:  "Dr. Rajesh Kumar",
			Area:        "Classroom Management",
			DateTime:    mustTime("2024-12-25T10:00:00Z"),
			DurationMin: 60,
			Language:    "English",
			Status:      models.SessionUpcoming,
			Attendees:   []string{"1"},
			Resources:   []models.Resource{},
		},
	}
}

func seedResources() []*models.Resource {
	return []*models.Resource{
		{
			ID: "1", Title: "Classroom Management Guide",
			Description: "Comprehensive guide for effective classroom management",
			Type:        models.ResourcePDF, URL: "/mock-resources/classroom-guide.pdf",
			UploadedBy: "2", UploadedAt: mustTime("2024-12-20T10:00:00Z"), Category: "Teaching Strategies",
		},
		{
			ID: "2", Title: "Effective Classroom Management Strategies",
			Description: "Comprehensive guide covering proven techniques for maintaining discipline and engagement in the classroom.",
			Type:        models.ResourcePDF, URL: "/mock-resources/classroom-management.pdf",
			UploadedBy: "Dr. Sarah Johnson", UploadedAt: mustTime("2024-12-20T10:00:00Z"), Category: "Classroom Management",
		},
		{
			ID: "3", Title: "Interactive Teaching Methods Video Series",
			Description: "A collection of videos demonstrating various interactive teaching methods to boost student participation.",
			Type:        models.ResourceVideo, URL: "/mock-resources/interactive-teaching.mp4",
			UploadedBy: "Prof. Michael Chen", UploadedAt: mustTime("2024-12-19T14:30:00Z"), Category: "Teaching Strategies",
		},
		{
			ID: "4", Title: "Assessment Techniques Presentation",
			Description: "Slide deck covering modern assessment methods including formative and summative evaluation strategies.",
			Type:        models.ResourcePPT, URL: "/mock-resources/assessment-techniques.pptx",
			UploadedBy: "Dr. Emily Rodriguez", UploadedAt: mustTime("2024-12-18T09:15:00Z"), Category: "Assessment Methods",
		},
		{
			ID: "5", Title: "Technology Integration in Education",
			Description: "Best practices for incorporating digital tools and platforms into teaching methodologies.",
			Type:        models.ResourcePDF, URL: "/mock-resources/tech-integration.pdf",
			UploadedBy: "James Wilson", UploadedAt: mustTime("2024-12-17T16:45:00Z"), Category: "Technology Integration",
		},
		{
			ID: "6", Title: "Professional Development Planning Guide",
			Description: "Step-by-step guide for creating effective professional development plans for educators.",
			Type:        models.ResourceDoc, URL: "/mock-resources/prof-dev-guide.docx",
			UploadedBy: "Dr. Lisa Thompson", UploadedAt: mustTime("2024-12-16T11:20:00Z"), Category: "Professional Development",
		},
		{
			ID: "7", Title: "STEM Education Best Practices",
			Description: "Research-based approaches to teaching Science, Technology, Engineering, and Mathematics effectively.",
			Type:        models.ResourcePDF, URL: "/mock-resources/stem-practices.pdf",
			UploadedBy: "Prof. David Kumar", UploadedAt: mustTime("2024-12-15T13:00:00Z"), Category: "Subject-Specific",
		},
	}
}

func seedTickets() []*models.Ticket {
	return []*models.Ticket{
		{
			ID: "HD-2024-001", Title: "Unable to upload session materials",
			Category: "Technical", Status: "Open", Priority: "High", SubmittedBy: "Priya Sharma",
			SubmittedAt: mustTime("2024-12-22T09:30:00Z"), LastUpdate: mustTime("2024-12-22T14:15:00Z"),
			Description: "Getting error when trying to upload PDF files to session resources.",
		},
		{
			ID: "HD-2024-002", Title: "Session scheduling conflict",
			Category: "Scheduling", Status: "In Progress", Priority: "Medium", SubmittedBy: "Dr. Rajesh Kumar",
			SubmittedAt: mustTime("2024-12-21T16:20:00Z"), LastUpdate: mustTime("2024-12-22T10:30:00Z"),
			Description: "Two mentoring sessions are showing the same time slot in my calendar.",
		},
		{
			ID: "HD-2024-003", Title: "Account access issue",
			Category: "Account", Status: "Resolved", Priority: "High", SubmittedBy: "Maya Patel",
			SubmittedAt: mustTime("2024-12-20T11:15:00Z"), LastUpdate: mustTime("2024-12-21T09:45:00Z"),
			Description: "Cannot log in with registered email address.",
		},
		{
			ID: "HD-2024-004", Title: "Mobile app not syncing",
			Category: "Technical", Status: "Open", Priority: "Low", SubmittedBy: "Amit Singh",
			SubmittedAt: mustTime("2024-12-19T14:00:00Z"), LastUpdate: mustTime("2024-12-20T08:20:00Z"),
			Description: "Mobile application is not syncing with web platform data.",
		},
	}
}
