package cmd

import (
	"context"
	"fmt"

	"github.com/conneroisu/patterns/internal/config"
	"github.com/conneroisu/patterns/internal/monitoring"
	"github.com/conneroisu/patterns/internal/order"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	orderQuantity int
	orderDiscount string
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Clone the sample order and edit the clone",
	Long: `Build the configured sample order, clone it, apply the flag values to the
clone only, and print both. The original is unchanged by the edits.

Examples:
  patterns order                          # Clone with quantity 5
  patterns order --quantity 2 --discount 40`,
	RunE: runOrderCommand,
}

func init() {
	rootCmd.AddCommand(orderCmd)

	orderCmd.Flags().IntVarP(&orderQuantity, "quantity", "q", 5, "Quantity for the clone's first line item")
	orderCmd.Flags().StringVarP(&orderDiscount, "discount", "d", "", "Discount percent for the clone (default keeps the template's)")
	AddFlagValidation(orderCmd, "quantity", ValidateQuantity)
	AddFlagValidation(orderCmd, "discount", ValidatePercent)
}

func runOrderCommand(cmd *cobra.Command, _ []string) error {
	original, err := buildSampleOrder(appConfig.Order)
	if err != nil {
		return err
	}

	clone, err := cloneAndEdit(cmd.Context(), original, orderQuantity, orderDiscount, nil)
	if err != nil {
		return err
	}

	return renderOrders(cmd, original, clone)
}

// buildSampleOrder turns the order section of the config into an order with
// one line item.
func buildSampleOrder(cfg config.OrderConfig) (*order.Order, error) {
	price, err := decimal.NewFromString(cfg.Price)
	if err != nil {
		return nil, fmt.Errorf("order price: %w", err)
	}
	delivery, err := decimal.NewFromString(cfg.Delivery)
	if err != nil {
		return nil, fmt.Errorf("order delivery: %w", err)
	}
	percent, err := decimal.NewFromString(cfg.Discount)
	if err != nil {
		return nil, fmt.Errorf("order discount: %w", err)
	}

	item, err := order.NewLineItem(cfg.Item, price, cfg.Quantity)
	if err != nil {
		return nil, err
	}
	discount, err := order.NewDiscount(percent)
	if err != nil {
		return nil, err
	}

	o := order.New()
	o.AddItem(item)
	o.SetDiscount(discount)
	o.SetDeliveryCost(delivery)
	o.SetPaymentMethod(cfg.PaymentMethod)
	return o, nil
}

// cloneAndEdit clones original, sets the clone's first item to quantity and,
// when percent is not empty, swaps in a new discount on the clone.
func cloneAndEdit(ctx context.Context, original *order.Order, quantity int, percent string, metrics *monitoring.ApplicationMetrics) (*order.Order, error) {
	clone, err := original.Clone()
	if metrics != nil {
		metrics.OrderCloned(err == nil)
	}
	if err != nil {
		appLogger.Error(ctx, err, "Order clone failed", "order_id", original.ID().String())
		return nil, err
	}
	appLogger.Debug(ctx, "Order cloned", "from", original.ID().String(), "to", clone.ID().String())

	if items := clone.Items(); len(items) > 0 {
		if err := items[0].SetQuantity(quantity); err != nil {
			return nil, err
		}
	}

	if percent != "" {
		p, err := decimal.NewFromString(percent)
		if err != nil {
			return nil, fmt.Errorf("discount: %w", err)
		}
		d, err := order.NewDiscount(p)
		if err != nil {
			return nil, err
		}
		clone.SetDiscount(d)
	}

	return clone, nil
}

func renderOrders(cmd *cobra.Command, original, clone *order.Order) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Original order %s:\n", original.ID())
	if err := original.Render(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nCloned order %s:\n", clone.ID())
	return clone.Render(out)
}
