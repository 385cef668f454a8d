package integrations_controllers

import (
	integrations_services "importhub/internal/features/integrations/services"
)

var integrationController = &IntegrationController{
	integrations_services.GetIntegrationService(),
}

func GetIntegrationController() *IntegrationController {
	return integrationController
}
