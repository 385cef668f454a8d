package importers_services

import (
	"context"
	"fmt"
	"log/slog"

	importers_models "importhub/internal/features/importers/models"

	"github.com/go-resty/resty/v2"
)

// ProxyNotifier tells the proxy that an import finished. The base URL is
// resolved on every call, so configuration is read only when a webhook is
// actually sent.
type ProxyNotifier struct {
	client  *resty.Client
	baseURL func() string
	logger  *slog.Logger
}

func NewProxyNotifier(baseURL func() string, logger *slog.Logger) *ProxyNotifier {
	return &ProxyNotifier{
		client:  resty.New(),
		baseURL: baseURL,
		logger:  logger,
	}
}

func (n *ProxyNotifier) GetClient() *resty.Client {
	return n.client
}

func (n *ProxyNotifier) IsEnabled() bool {
	return n.baseURL() != ""
}

func (n *ProxyNotifier) HookURL(job *importers_models.ImportJob) string {
	return fmt.Sprintf(
		"%s/hooks/workspaces/%s/projects/%s/importers/%s/",
		n.baseURL(),
		job.WorkspaceID,
		job.ProjectID,
		job.Service,
	)
}

// NotifyImportFinished posts the job to the proxy. Only a transport error is
// returned; the response is not validated and a non-2xx status is logged.
func (n *ProxyNotifier) NotifyImportFinished(ctx context.Context, job *importers_models.ImportJob) error {
	url := n.HookURL(job)

	response, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(job).
		Post(url)
	if err != nil {
		return fmt.Errorf("failed to post importer webhook: %w", err)
	}

	if !response.IsSuccess() {
		n.logger.Warn(
			"Importer webhook responded with unexpected status",
			slog.String("url", url),
			slog.Int("status", response.StatusCode()),
		)
	}

	return nil
}
