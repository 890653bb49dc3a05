package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"productapi/internal/api"
	"productapi/internal/api/handlers"
	"productapi/internal/apperrors"
	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/models"
	"productapi/internal/services/importer"
	wc "productapi/internal/services/woocommerce"

	"github.com/spf13/cobra"
)

// app holds the services a command runs against.
type app struct {
	deps   *api.Dependencies
	out    io.Writer
	closer func()
}

func newApp(verbose bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if !verbose {
		level = "warn"
	}
	log := logger.New(level)

	deps := api.NewDependencies(cfg, log)
	return &app{deps: deps, out: os.Stdout, closer: deps.Close}, nil
}

func (a *app) print(resp handlers.Response) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func (a *app) ok(data interface{}, message string) error {
	return a.print(handlers.Response{Success: true, Data: data, Message: message})
}

// fail prints the failure envelope and returns err so the process exits
// non-zero.
func (a *app) fail(err error) error {
	resp := handlers.Response{Success: false, Error: err.Error()}
	if raw, ok := apperrors.RawResponse(err); ok {
		resp.RawResponse = raw
	}
	if printErr := a.print(resp); printErr != nil {
		return printErr
	}
	return err
}

// newRootCmd builds the command tree. A nil app is built from the
// environment before the first command runs.
func newRootCmd(a *app) *cobra.Command {
	if a == nil {
		a = &app{}
	}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "productctl",
		Short: "Manage WooCommerce products and categories from the terminal",
		Long: `productctl talks to the same WooCommerce store and OpenAI account as the
product API. Every command prints the JSON envelope the API would return.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.deps != nil {
				return nil
			}
			built, err := newApp(verbose)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			*a = *built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closer != nil {
				a.closer()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warn")

	rootCmd.AddCommand(newProductsCmd(a))
	rootCmd.AddCommand(newCategoriesCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))

	return rootCmd
}

func newProductsCmd(a *app) *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "List, create and bulk-insert products",
	}

	var page, perPage int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.deps.Products.ListProducts(cmd.Context(), page, perPage)
			if err != nil {
				return a.fail(err)
			}
			return a.ok(products, "Products fetched successfully")
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&perPage, "per-page", 10, "Products per page")

	var draft models.ProductDraft
	var price, salePrice, sku string
	var categoryIDs []int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a single product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.RegularPrice = models.FlexString(price)
			draft.SalePrice = models.FlexString(salePrice)
			draft.SKU = models.FlexString(sku)
			for _, id := range categoryIDs {
				draft.Categories = append(draft.Categories, models.CategoryRef{ID: id})
			}

			product, err := a.deps.Products.CreateProduct(cmd.Context(), &draft)
			if err != nil {
				return a.fail(err)
			}
			return a.ok(product, fmt.Sprintf("Product '%s' created successfully", product.Name))
		},
	}
	createCmd.Flags().StringVar(&draft.Name, "name", "", "Product name")
	createCmd.Flags().StringVar(&price, "price", "", "Regular price")
	createCmd.Flags().StringVar(&salePrice, "sale-price", "", "Sale price")
	createCmd.Flags().StringVar(&sku, "sku", "", "SKU")
	createCmd.Flags().StringVar(&draft.Description, "description", "", "HTML description")
	createCmd.Flags().StringVar(&draft.ShortDescription, "short-description", "", "Short description")
	createCmd.Flags().StringVar((*string)(&draft.Status), "status", "", "draft, pending, private or publish")
	createCmd.Flags().IntSliceVar(&categoryIDs, "category", nil, "Category ID (repeatable)")

	var async bool
	bulkCmd := &cobra.Command{
		Use:   "bulk <file>",
		Short: "Create every product in a .json, .csv or .xlsx file, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := readDrafts(args[0])
			if err != nil {
				return a.fail(err)
			}
			return runBulk(cmd.Context(), a, args[0], drafts, async)
		},
	}
	bulkCmd.Flags().BoolVar(&async, "async", false, "Queue the file as a bulk job for the worker")

	productsCmd.AddCommand(listCmd, createCmd, bulkCmd)
	return productsCmd
}

func readDrafts(path string) ([]models.ProductDraft, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return importer.ParseFile(path, file)
}

func runBulk(ctx context.Context, a *app, source string, drafts []models.ProductDraft, async bool) error {
	if len(drafts) == 0 {
		return a.fail(apperrors.NewValidationError("At least one product is required", "products"))
	}

	if !async {
		result := a.deps.Sequencer.BulkInsert(ctx, drafts)
		return a.ok(result, result.Message)
	}

	if a.deps.Publisher == nil {
		return a.fail(&apperrors.ConfigError{Setting: "KAFKA_BROKERS", Message: "Kafka brokers not configured"})
	}
	job, err := a.deps.Publisher.PublishBulkJob(ctx, source, drafts)
	if err != nil {
		return a.fail(err)
	}
	return a.ok(map[string]string{"job_id": job.ID}, fmt.Sprintf("Bulk job queued with %d products", len(drafts)))
}

func newCategoriesCmd(a *app) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List and create product categories",
	}

	opts := wc.DefaultCategoryListOptions()
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.deps.Categories.ListCategories(cmd.Context(), opts)
			if err != nil {
				return a.fail(err)
			}
			return a.ok(categories, "Categories fetched successfully")
		},
	}
	listCmd.Flags().IntVar(&opts.PerPage, "per-page", opts.PerPage, "Categories per page")
	listCmd.Flags().StringVar(&opts.OrderBy, "orderby", opts.OrderBy, "Sort field")
	listCmd.Flags().StringVar(&opts.Order, "order", opts.Order, "asc or desc")

	var input models.CategoryInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := a.deps.Categories.CreateCategory(cmd.Context(), input)
			if err != nil {
				return a.fail(err)
			}
			return a.ok(category, fmt.Sprintf("Category '%s' created successfully", category.Name))
		},
	}
	createCmd.Flags().StringVar(&input.Name, "name", "", "Category name")
	createCmd.Flags().StringVar(&input.Description, "description", "", "Description")
	createCmd.Flags().StringVar(&input.Slug, "slug", "", "URL slug")
	createCmd.Flags().IntVar(&input.Parent, "parent", 0, "Parent category ID")

	categoriesCmd.AddCommand(listCmd, createCmd)
	return categoriesCmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var categories []string

	generateCmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Draft a product with OpenAI",
		Long: `Draft a product from a free-text prompt. The draft is printed, not created;
pipe it to a file and use "products bulk" to submit it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var refs []models.CategoryRef
			for _, name := range categories {
				refs = append(refs, models.CategoryRef{Name: name})
			}

			draft, err := a.deps.Generator.Generate(cmd.Context(), strings.Join(args, " "), refs)
			if err != nil {
				return a.fail(err)
			}
			return a.ok(draft, "Product data generated successfully")
		},
	}
	generateCmd.Flags().StringSliceVar(&categories, "category", nil, "Category names the model may pick from")

	return generateCmd
}
