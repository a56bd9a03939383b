// Package seed loads reference data (admin account, promo codes, testimonials
// and starter products) from a YAML file into an empty or existing database.
package seed

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// Data is the root of the seed file.
type Data struct {
	Admin        *AdminSeed        `yaml:"admin"`
	PromoCodes   []PromoCodeSeed   `yaml:"promoCodes"`
	Testimonials []TestimonialSeed `yaml:"testimonials"`
	Products     []ProductSeed     `yaml:"products"`
}

type AdminSeed struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type PromoCodeSeed struct {
	Code            string `yaml:"code"`
	DiscountPercent int    `yaml:"discountPercent"`
	Active          bool   `yaml:"active"`
}

type TestimonialSeed struct {
	Name        string `yaml:"name"`
	Avatar      string `yaml:"avatar"`
	Comment     string `yaml:"comment"`
	Rating      int    `yaml:"rating"`
	ProductType string `yaml:"productType"`
}

// ProductSeed mirrors the admin create-product input. Prices are strings so
// YAML floats never round them.
type ProductSeed struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	PetType       string   `yaml:"petType"`
	Brand         string   `yaml:"brand"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"originalPrice"`
	Image         string   `yaml:"image"`
	Images        []string `yaml:"images"`
	Description   string   `yaml:"description"`
	Features      []string `yaml:"features"`
	Weight        string   `yaml:"weight"`
	Dimensions    string   `yaml:"dimensions"`
	Featured      bool     `yaml:"featured"`
	StockCount    int      `yaml:"stockCount"`
	SKU           string   `yaml:"sku"`
}

// Load reads and parses a seed file.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read seed file %s", path)
	}

	return Parse(raw)
}

// Parse decodes seed YAML, rejecting unknown keys.
func Parse(raw []byte) (*Data, error) {
	var data Data
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse seed file")
	}

	return &data, nil
}

// SeederParams holds dependencies for Seeder, injected by Fx.
type SeederParams struct {
	fx.In

	UserRepo        repository.UserRepository
	PromoCodeRepo   repository.PromoCodeRepository
	TestimonialRepo repository.TestimonialRepository
	ProductRepo     repository.ProductRepository
	AdminUC         usecase.AdminUsecase
	Hasher          service.PasswordHasher
	Logger          *slog.Logger
}

// Seeder applies seed data. Every step is idempotent, so the tool can run on each deploy.
type Seeder struct {
	userRepo        repository.UserRepository
	promoCodeRepo   repository.PromoCodeRepository
	testimonialRepo repository.TestimonialRepository
	productRepo     repository.ProductRepository
	adminUC         usecase.AdminUsecase
	hasher          service.PasswordHasher
	logger          *slog.Logger
}

// NewSeeder is the constructor for Seeder.
func NewSeeder(params SeederParams) *Seeder {
	return &Seeder{
		userRepo:        params.UserRepo,
		promoCodeRepo:   params.PromoCodeRepo,
		testimonialRepo: params.TestimonialRepo,
		productRepo:     params.ProductRepo,
		adminUC:         params.AdminUC,
		hasher:          params.Hasher,
		logger:          params.Logger,
	}
}

// Apply seeds everything in data.
func (s *Seeder) Apply(ctx context.Context, data *Data) error {
	if err := s.seedAdmin(ctx, data.Admin); err != nil {
		return err
	}
	if err := s.seedPromoCodes(ctx, data.PromoCodes); err != nil {
		return err
	}
	if err := s.seedTestimonials(ctx, data.Testimonials); err != nil {
		return err
	}

	return s.seedProducts(ctx, data.Products)
}

// seedAdmin creates the admin account unless the email is already registered.
func (s *Seeder) seedAdmin(ctx context.Context, admin *AdminSeed) error {
	if admin == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		return errors.New("admin seed requires email and password")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info("Admin account already exists", slog.String("email", email))

		return nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to look up admin account")
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         admin.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		AvatarURL:    entity.DefaultAvatarURL(admin.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(err, "failed to create admin account")
	}

	s.logger.Info("Admin account created", slog.String("email", email))

	return nil
}

func (s *Seeder) seedPromoCodes(ctx context.Context, promos []PromoCodeSeed) error {
	for _, p := range promos {
		if p.DiscountPercent < 1 || p.DiscountPercent > 100 {
			return errors.Errorf("promo code %q: discount must be between 1 and 100", p.Code)
		}

		promo := &entity.PromoCode{
			ID:              uuid.New(),
			Code:            entity.NormalizePromoCode(p.Code),
			DiscountPercent: p.DiscountPercent,
			Active:          p.Active,
		}
		if err := s.promoCodeRepo.Upsert(ctx, promo); err != nil {
			return errors.Wrapf(err, "failed to upsert promo code %s", promo.Code)
		}
	}

	if len(promos) > 0 {
		s.logger.Info("Promo codes seeded", slog.Int("count", len(promos)))
	}

	return nil
}

// seedTestimonials only fills an empty table; testimonials have no natural key.
func (s *Seeder) seedTestimonials(ctx context.Context, testimonials []TestimonialSeed) error {
	if len(testimonials) == 0 {
		return nil
	}

	count, err := s.testimonialRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count testimonials")
	}
	if count > 0 {
		s.logger.Info("Testimonials already present, skipping", slog.Int64("count", count))

		return nil
	}

	for _, t := range testimonials {
		testimonial := &entity.Testimonial{
			ID:          uuid.New(),
			Name:        t.Name,
			AvatarURL:   t.Avatar,
			Comment:     t.Comment,
			Rating:      t.Rating,
			ProductType: t.ProductType,
		}
		if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
			return errors.Wrapf(err, "failed to create testimonial from %s", t.Name)
		}
	}

	s.logger.Info("Testimonials seeded", slog.Int("count", len(testimonials)))

	return nil
}

// seedProducts goes through the admin usecase so slugs, SKU checks and
// derived stock flags follow the same rules as the admin API.
func (s *Seeder) seedProducts(ctx context.Context, products []ProductSeed) error {
	if len(products) == 0 {
		return nil
	}

	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count products")
	}
	if count > 0 {
		s.logger.Info("Catalog already present, skipping products", slog.Int64("count", count))

		return nil
	}

	for _, p := range products {
		input, err := p.toInput()
		if err != nil {
			return err
		}
		if _, err := s.adminUC.CreateProduct(ctx, input); err != nil {
			return errors.Wrapf(err, "failed to create product %s", p.SKU)
		}
	}

	s.logger.Info("Products seeded", slog.Int("count", len(products)))

	return nil
}

func (p ProductSeed) toInput() (*usecase.CreateProductInput, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, errors.Wrapf(err, "product %s: invalid price", p.SKU)
	}

	input := &usecase.CreateProductInput{
		Name:        p.Name,
		Category:    entity.Category(p.Category),
		PetType:     entity.PetType(p.PetType),
		Brand:       p.Brand,
		Price:       price,
		Image:       p.Image,
		Images:      p.Images,
		Description: p.Description,
		Features:    p.Features,
		Weight:      p.Weight,
		Featured:    p.Featured,
		StockCount:  p.StockCount,
		SKU:         p.SKU,
	}

	if p.OriginalPrice != "" {
		originalPrice, err := decimal.NewFromString(p.OriginalPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "product %s: invalid original price", p.SKU)
		}
		input.OriginalPrice = &originalPrice
	}
	if p.Dimensions != "" {
		dimensions := p.Dimensions
		input.Dimensions = &dimensions
	}

	return input, nil
}
