package tasks

type TaskName string

const (
	TaskNameServiceImporter  TaskName = "service_importer"
	TaskNameSendWelcomeEmail TaskName = "send_welcome_email"
)
