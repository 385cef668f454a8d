package importers_controllers

import (
	importers_services "importhub/internal/features/importers/services"
)

var importerController = &ImporterController{
	importers_services.GetImporterService(),
}

func GetImporterController() *ImporterController {
	return importerController
}
