package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/config"
	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/internal/domain/repository"
	"github.com/oksasatya/marketplace-storefront/internal/infrastructure/search"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
)

// Container holds the components shared by router modules. It is built once in
// main; optional clients are nil when their feature is not configured.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer

	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	Users     repository.UserRepository
	Passwords *helpers.PasswordHasher
	JWT       *helpers.JWTManager
	Cookies   *helpers.Manager
}

// New builds the parts every deployment has. Optional clients are set by the caller afterwards.
func New(cfg *config.Config, logger *logrus.Logger, users repository.UserRepository) (*Container, error) {
	jwtManager, err := helpers.NewJWTManager(cfg.JWTSecret, helpers.SessionTTL)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Registry:  reg,
		Gatherer:  reg,
		Users:     users,
		Passwords: helpers.NewPasswordHasher(cfg.BcryptCost),
		JWT:       jwtManager,
		Cookies:   helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}, nil
}

// AccountService wires the account use cases to whichever optional backends are configured.
func (c *Container) AccountService() *application.Service {
	svc := application.NewService(c.Users, c.Passwords, c.JWT, c.Logger)
	if c.RabbitPub != nil && c.Config.MailSendEnabled {
		svc.Notifier = c.RabbitPub
	}
	if c.GCS != nil && c.Config.GCSBucket != "" {
		svc.Images = helpers.NewGCSImageStore(c.GCS, c.Config.GCSBucket)
	}
	if c.ES != nil {
		svc.Directory = search.NewUserDirectory(c.ES, c.Config.ESUsersIndex)
	}
	return svc
}
