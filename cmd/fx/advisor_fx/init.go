// cmd/fx/advisor_fx/init.go
package advisor_fx

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/fx"

	"menuadvisor/internal/infra"
	"menuadvisor/internal/questionnaire"
	"menuadvisor/internal/services"
	mem "menuadvisor/pkg/memcache"
	"menuadvisor/pkg/utils"
)

var Module = fx.Provide(
	ProvideAdvisorConfig,
	ProvideAdvisorClient,
	ProvideAdvisorService)

// Defaults used by the original menu advisor page.
const (
	defaultMerchantID = "5f4d157ed8eef50017ed8836"
	defaultMenuID     = "menu"
	defaultLanguage   = "en"
)

// AdvisorSettings holds everything read from the environment for the advisor.
type AdvisorSettings struct {
	Client  infra.AdvisorConfig
	Service services.AdvisorServiceConfig
}

// ProvideAdvisorConfig reads configuration from environment variables
func ProvideAdvisorConfig() (AdvisorSettings, error) {
	baseURL := os.Getenv("ADVISOR_BASE_URL")
	if baseURL == "" {
		return AdvisorSettings{}, fmt.Errorf("ADVISOR_BASE_URL is required")
	}

	settings := AdvisorSettings{
		Client: infra.AdvisorConfig{
			BaseURL: baseURL,
			Timeout: utils.GetDurationWithDefault("ADVISOR_TIMEOUT", 60*time.Second),
		},
		Service: services.AdvisorServiceConfig{
			DefaultParams: questionnaire.SessionParams{
				MerchantID: utils.GetEnvWithDefault("ADVISOR_MERCHANT_ID", defaultMerchantID),
				MenuID:     utils.GetEnvWithDefault("ADVISOR_MENU_ID", defaultMenuID),
				Language:   utils.GetEnvWithDefault("ADVISOR_LANGUAGE", defaultLanguage),
			},
			SessionTTL: utils.GetDurationWithDefault("SESSION_TTL", 30*time.Minute),
		},
	}

	log.Printf("Advisor service at %s (timeout %s, session ttl %s)",
		baseURL, settings.Client.Timeout, settings.Service.SessionTTL)
	return settings, nil
}

// ProvideAdvisorClient creates the HTTP client for the question and recommendation services
func ProvideAdvisorClient(settings AdvisorSettings) questionnaire.Upstream {
	return infra.NewAdvisorClient(settings.Client, nil)
}

// ProvideAdvisorService creates the advisor service with all dependencies
func ProvideAdvisorService(
	upstream questionnaire.Upstream,
	sessions mem.SessionStore,
	settings AdvisorSettings,
) services.AdvisorServiceInterface {
	return services.NewAdvisorService(upstream, sessions, settings.Service)
}
