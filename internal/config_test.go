package internal_test

import (
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() internal.Config {
	return internal.Config{
		Client: internal.ClientConfig{APIBaseURL: "http://localhost:5000", Timeout: time.Second},
		Server: internal.ServerConfig{Port: 5000, AllowedOrigins: "*", ReadHeaderTimeout: time.Second, ReadTimeout: 2 * time.Second},
		Database: internal.DatabaseConfig{
			Driver:       "sqlite",
			Source:       ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Security: internal.SecurityConfig{
			SessionSecret: "0123456789abcdef0123456789abcdef",
			BCryptCost:    4,
			SessionTTL:    time.Hour,
			RememberTTL:   24 * time.Hour,
		},
		Observability: internal.ObservabilityConfig{
			Logging: internal.LoggingConfig{Level: "info", Format: "text"},
		},
	}
}

var _ = Describe("Config", func() {
	It("accepts a complete configuration", func() {
		cfg := validConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.ValidateServer()).To(Succeed())
	})

	It("collects every section error", func() {
		cfg := validConfig()
		cfg.Client.APIBaseURL = "ftp://example"
		cfg.Database.Driver = "mysql"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("client config"))
		Expect(err.Error()).To(ContainSubstring("database config"))
		Expect(err.Error()).To(ContainSubstring("; "))
	})

	It("requires a long session secret only for the server", func() {
		cfg := validConfig()
		cfg.Security.SessionSecret = "short"

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.ValidateServer()).To(MatchError(ContainSubstring("session secret")))
	})

	It("provides a default for every section", func() {
		defaults := internal.Defaults()
		Expect(defaults).To(HaveKey("client.api_base_url"))
		Expect(defaults).To(HaveKeyWithValue("security.remember_ttl", 30*24*time.Hour))
		Expect(defaults).To(HaveKeyWithValue("database.driver", "sqlite"))
	})
})

var _ = Describe("ServerConfig.Origins", func() {
	It("treats a wildcard as any origin", func() {
		Expect((&internal.ServerConfig{AllowedOrigins: "*"}).Origins()).To(BeNil())
		Expect((&internal.ServerConfig{AllowedOrigins: "http://a, *"}).Origins()).To(BeNil())
	})

	It("splits and trims explicit origins", func() {
		cfg := internal.ServerConfig{AllowedOrigins: "http://a, http://b ,"}
		Expect(cfg.Origins()).To(Equal([]string{"http://a", "http://b"}))
	})
})
