package services

// Services groups every service the HTTP layer depends on.
//
//   - ApplicantService: applicant registration, login and logout
//   - AdminService: administrator accounts, sessions and token checks
//   - ApplicationService: the admin review surface over applications
//   - DocumentService: admit cards and application summaries
//   - SyllabusService, DatesheetService, MessageService, AssignmentService:
//     school content with PDF uploads
//   - ContactService: public contact-form submissions
//   - DashboardService: record counts
type Services struct {
	Applicant   *ApplicantService
	Admin       *AdminService
	Application *ApplicationService
	Document    *DocumentService
	Syllabus    *SyllabusService
	Datesheet   *DatesheetService
	Message     *MessageService
	Contact     *ContactService
	Assignment  *AssignmentService
	Dashboard   *DashboardService
}
