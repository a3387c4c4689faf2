package controllers

import (
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/services"
)

// Controllers holds every HTTP handler group
type Controllers struct {
	Applicant   *ApplicantController
	Admin       *AdminController
	Application *ApplicationController
	Dashboard   *DashboardController
	Syllabus    *SyllabusController
	Datesheet   *DatesheetController
	Message     *MessageController
	Contact     *ContactController
	Assignment  *AssignmentController
}

// NewControllers builds the handler groups over svc
func NewControllers(svc *services.Services, logger zerolog.Logger) *Controllers {
	return &Controllers{
		Applicant:   NewApplicantController(svc.Applicant, svc.Document, logger),
		Admin:       NewAdminController(svc.Admin, logger),
		Application: NewApplicationController(svc.Application, svc.Document, logger),
		Dashboard:   NewDashboardController(svc.Dashboard),
		Syllabus:    NewSyllabusController(svc.Syllabus, logger),
		Datesheet:   NewDatesheetController(svc.Datesheet, logger),
		Message:     NewMessageController(svc.Message, logger),
		Contact:     NewContactController(svc.Contact),
		Assignment:  NewAssignmentController(svc.Assignment, logger),
	}
}
