package app_errors

import "errors"

var ErrUserExists = errors.New("username or email already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrInvalidOTP = errors.New("invalid otp")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrVideoLimit = errors.New("a course can hold at most ten video links")
var ErrNotPDF = errors.New("file is not a pdf")
var ErrFileNotFound = errors.New("file not found")
var ErrTopicNotFound = errors.New("no questions found for this topic")
var ErrQuestionNotFound = errors.New("question not found")
var ErrInvalidQuestion = errors.New("question must have a topic, text, four options and a correct letter")
var ErrScoreNotFound = errors.New("no score found for this user")
var ErrBadQuizPayload = errors.New("completion service returned an invalid quiz payload")
var ErrCompletionUnavailable = errors.New("completion service unavailable")
