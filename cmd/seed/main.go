// Package main seeds a running storefront with a starter catalog and a set of
// reviews per product. It talks to the public REST API, so it works the same
// against either store driver.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utafrali/AngelsParadise/internal/client"
	pkgconfig "github.com/utafrali/AngelsParadise/pkg/config"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
	"github.com/utafrali/AngelsParadise/pkg/logger"
)

type seedConfig struct {
	BaseURL           string `env:"SEED_BASE_URL" envDefault:"http://localhost:5000"`
	ReviewsPerProduct int    `env:"SEED_REVIEWS_PER_PRODUCT" envDefault:"4"`
	RandomSeed        uint64 `env:"SEED_RANDOM_SEED" envDefault:"42"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
}

// --------------------------------------------------------------------------
// Seed data definitions
// --------------------------------------------------------------------------

const pexels = "https://images.pexels.com/photos/"

var products = []client.ProductDraft{
	{
		Name:        "Pink Princess Tulle Dress",
		Description: "Layered tulle dress with a satin bodice for parties and photos.",
		Price:       29.99,
		Image:       pexels + "1598507/pexels-photo-1598507.jpeg",
		Category:    "Dresses",
		Sizes:       []string{"6M", "12M", "18M", "2T", "3T"},
		Colors:      []string{"Pink", "White", "Lavender"},
		Featured:    boolPtr(true),
	},
	{
		Name:        "Cute Floral Romper Set",
		Description: "Cotton romper with a matching headband.",
		Price:       19.99,
		Image:       pexels + "1620760/pexels-photo-1620760.jpeg",
		Category:    "Rompers",
		Sizes:       []string{"0-3M", "3-6M", "6M", "12M"},
		Colors:      []string{"Pink", "Yellow"},
		Featured:    boolPtr(true),
	},
	{
		Name:        "Ruffle Denim Skirt",
		Description: "Soft stretch denim with ruffled hem and an elastic waist.",
		Price:       22.50,
		Image:       pexels + "3661356/pexels-photo-3661356.jpeg",
		Category:    "Skirts",
		Sizes:       []string{"2T", "3T", "4T", "5"},
		Colors:      []string{"Blue"},
	},
	{
		Name:        "Sunny Flutter Sleeve Dress",
		Description: "Lightweight summer dress with flutter sleeves.",
		Price:       32.99,
		Image:       pexels + "1598507/pexels-photo-1598507.jpeg",
		Category:    "Dresses",
		Sizes:       []string{"12M", "18M", "2T", "3T", "4T"},
		Colors:      []string{"Yellow", "Coral", "Mint"},
		Featured:    boolPtr(true),
	},
	{
		Name:        "Cozy Knit Cardigan",
		Description: "Chunky knit cardigan with pearl buttons.",
		Price:       28.99,
		Image:       pexels + "3875080/pexels-photo-3875080.jpeg",
		Category:    "Outerwear",
		Sizes:       []string{"12M", "2T", "3T", "4T"},
		Colors:      []string{"Cream", "Pink"},
	},
	{
		Name:        "Bunny Pajama Set",
		Description: "Two-piece organic cotton pajamas.",
		Price:       24.00,
		Image:       pexels + "3933275/pexels-photo-3933275.jpeg",
		Category:    "Sleepwear",
		Sizes:       []string{"18M", "2T", "3T", "4T", "5"},
		Colors:      []string{"Lavender", "White"},
	},
	{
		Name:        "Butterfly Hair Clip Trio",
		Description: "Three glitter clips with non-slip grips.",
		Price:       8.50,
		Image:       pexels + "5693889/pexels-photo-5693889.jpeg",
		Category:    "Accessories",
		Colors:      []string{"Pink", "Gold", "Silver"},
	},
	{
		Name:        "Twirl Tutu and Tee Set",
		Description: "Graphic tee paired with a rainbow tutu.",
		Price:       26.75,
		Image:       pexels + "1648377/pexels-photo-1648377.jpeg",
		Category:    "Sets",
		Sizes:       []string{"2T", "3T", "4T"},
		Colors:      []string{"Rainbow"},
		InStock:     boolPtr(false),
	},
}

var reviewers = []string{"Amelia", "Sofia", "Hannah", "Leah", "Grace", ""}

var comments = map[int][]string{
	1: {"Fabric was scratchy and the seams came apart."},
	2: {"Runs small, had to return it.", "Colour faded after one wash."},
	3: {"Okay for the price.", "Cute but thinner than expected."},
	4: {"Lovely fit, true to size.", "My daughter wears it every weekend."},
	5: {"Absolutely adorable!", "Beautiful quality and fast shipping.", "Got so many compliments."},
}

func boolPtr(b bool) *bool { return &b }

func main() {
	var cfg seedConfig
	if err := pkgconfig.Load(&cfg); err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("angels-paradise-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg seedConfig, log *slog.Logger) error {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = 10 * time.Second
	api := client.New(httpclient.New(httpCfg), cfg.BaseURL)
	rng := rand.New(rand.NewPCG(cfg.RandomSeed, cfg.RandomSeed))

	log.Info("seeding storefront",
		slog.String("base_url", cfg.BaseURL),
		slog.Int("products", len(products)),
		slog.Int("reviews_per_product", cfg.ReviewsPerProduct),
	)

	reviewCount := 0
	for _, draft := range products {
		product, err := api.CreateProduct(ctx, draft)
		if err != nil {
			return fmt.Errorf("create product %q: %w", draft.Name, err)
		}
		log.Debug("created product", slog.String("id", product.ID), slog.String("name", product.Name))

		for i := 0; i < cfg.ReviewsPerProduct; i++ {
			rating := pickRating(rng)
			options := comments[rating]
			_, err := api.SubmitReview(ctx, client.ReviewDraft{
				ProductID: product.ID,
				UserID:    reviewers[rng.IntN(len(reviewers))],
				Rating:    rating,
				Comment:   options[rng.IntN(len(options))],
			})
			if err != nil {
				return fmt.Errorf("submit review for %s: %w", product.ID, err)
			}
			reviewCount++
		}

		summary, err := api.RatingsSummary(ctx, product.ID)
		if err != nil {
			log.Warn("ratings summary unavailable",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		log.Info("seeded product",
			slog.String("id", product.ID),
			slog.String("name", product.Name),
			slog.Float64("average_rating", summary.Average),
			slog.Int("reviews", summary.Count),
		)
	}

	log.Info("seed complete",
		slog.Int("products", len(products)),
		slog.Int("reviews", reviewCount),
	)
	return nil
}

// pickRating skews towards the 4 and 5 star end.
func pickRating(rng *rand.Rand) int {
	switch n := rng.IntN(10); {
	case n < 5:
		return 5
	case n < 8:
		return 4
	case n < 9:
		return 3
	default:
		return 1 + rng.IntN(2)
	}
}
