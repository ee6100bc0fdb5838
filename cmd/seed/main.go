// Comando seed: crea el usuario administrador inicial y las categorías de
// gasto base. Idempotente: lo que ya existe se deja intacto.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/infrastructure/postgres"
	"github.com/lapstock/lapstock-api/pkg/config"
	"github.com/lapstock/lapstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@lapstock.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "")
	if adminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD es requerido")
	}

	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.NewString(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", adminEmail).Msg("usuario administrador creado")
	} else {
		log.Info().Str("email", adminEmail).Msg("el administrador ya existe")
	}

	categoryRepo := postgres.NewExpenseCategoryRepository(pool)
	categories := []entity.ExpenseCategory{
		{Name: "Renta", Color: "#e74c3c", Description: "Arriendo de locales y bodegas"},
		{Name: "Servicios", Color: "#3498db", Description: "Luz, agua, internet, telefonía"},
		{Name: "Nómina", Color: "#2ecc71", Description: "Sueldos y prestaciones"},
		{Name: "Transporte", Color: "#f39c12", Description: "Envíos y mensajería"},
		{Name: "Otros", Color: "#95a5a6", Description: "Gastos no clasificados"},
	}
	for _, c := range categories {
		c.CreatedAt = time.Now()
		if err := categoryRepo.Create(&c); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			log.Fatal().Err(err).Str("category", c.Name).Msg("crear categoría")
		}
		log.Info().Str("category", c.Name).Msg("categoría creada")
	}

	log.Info().Msg("seed completado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
