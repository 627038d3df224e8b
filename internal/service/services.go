package service

import (
	"github.com/kkarthika293/Learn-Edge/internal/service/auth"
	"github.com/kkarthika293/Learn-Edge/internal/service/certificate"
	"github.com/kkarthika293/Learn-Edge/internal/service/chat"
	"github.com/kkarthika293/Learn-Edge/internal/service/course"
	"github.com/kkarthika293/Learn-Edge/internal/service/quiz"
)

type Collection struct {
	*auth.AuthService
	*course.CourseService
	*quiz.QuizService
	*chat.ChatService
	*certificate.CertificateService
}
