package console

import (
	"bufio"
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/archive"
	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	menusvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/menu"
	ordersvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

// Module provides the console front end to Fx.
var Module = fx.Provide(New)

// Console is the interactive terminal front end. It drives the same
// services as the HTTP transport, one session per run, keeping a single
// in-progress draft until checkout or exit.
type Console struct {
	menu    *menusvc.Service
	orders  *ordersvc.Service
	archive *archive.Store
	cfg     config.Config
	logger  *zap.Logger

	in  *bufio.Scanner
	out io.Writer

	draft *ordersvc.Draft
}

// Params defines dependencies for constructing Console.
type Params struct {
	fx.In

	Menu    *menusvc.Service
	Orders  *ordersvc.Service
	Archive *archive.Store
	Config  config.Config
	Logger  *zap.Logger
}

// New builds a Console reading stdin and writing stdout.
func New(p Params) *Console {
	return &Console{
		menu:    p.Menu,
		orders:  p.Orders,
		archive: p.Archive,
		cfg:     p.Config,
		logger:  p.Logger,
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		draft:   ordersvc.NewDraft(),
	}
}

// Run loops until the user exits or input is exhausted.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Welcome to the restaurant!\n")
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.printf("\n==== Main Menu ====\n")
		c.printf(" 1. Browse menu\n")
		c.printf(" 2. Add item to order\n")
		c.printf(" 3. View current order\n")
		c.printf(" 4. Checkout\n")
		c.printf(" 5. Find order by number\n")
		c.printf(" 6. Admin panel\n")
		c.printf(" 0. Exit\n")

		choice, ok := c.prompt("Select: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			c.browseMenu(ctx)
		case "2":
			c.addToOrder(ctx)
		case "3":
			c.showDraft()
		case "4":
			c.checkout(ctx)
		case "5":
			c.findOrder(ctx)
		case "6":
			c.adminPanel(ctx)
		case "0", "q", "exit":
			c.printf("Goodbye!\n")
			return nil
		default:
			c.printf("Unknown choice %q\n", choice)
		}
	}
}

func (c *Console) browseMenu(ctx context.Context) {
	categories := c.menu.Categories(ctx)
	if len(categories) == 0 {
		c.printf("The menu is empty right now.\n")
		return
	}
	for _, category := range categories {
		c.printf("\n-- %s --\n", category.Name)
		items := c.menu.Items(ctx, menusvc.Filter{
			CategoryID:    &category.ID,
			AvailableOnly: true,
		})
		if len(items) == 0 {
			c.printf("  (nothing available)\n")
			continue
		}
		for _, item := range items {
			c.printf("  [%d] %s - %s\n", item.ID, item.Name, item.Price.StringFixed(2))
			if item.Description != "" {
				c.printf("      %s\n", item.Description)
			}
		}
	}
}

func (c *Console) addToOrder(ctx context.Context) {
	id, ok := c.promptInt64("Menu item id: ")
	if !ok {
		return
	}
	quantity, ok := c.promptInt("Quantity: ")
	if !ok {
		return
	}

	line, err := c.orders.AddToDraft(ctx, c.draft, id, quantity)
	if err != nil {
		c.printAppError(err)
		return
	}
	c.printf("Added %d x %s (%s each)\n", line.Quantity, line.MenuItemName, line.PriceAtOrder.StringFixed(2))
}

func (c *Console) showDraft() {
	if c.draft.Empty() {
		c.printf("Your order is empty.\n")
		return
	}
	c.printf("\n==== Current Order ====\n")
	for i, line := range c.draft.Items() {
		c.printf(" %d. %d x %s @ %s = %s\n",
			i+1, line.Quantity, line.MenuItemName,
			line.PriceAtOrder.StringFixed(2), line.LineSubtotal().StringFixed(2))
	}
	c.printf("Total: %s\n", c.draft.Total().StringFixed(2))

	choice, ok := c.prompt("Remove a line? (number or enter to keep): ")
	if !ok || choice == "" {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || !c.draft.Remove(idx-1) {
		c.printf("No such line.\n")
		return
	}
	c.printf("Removed. New total: %s\n", c.draft.Total().StringFixed(2))
}

func (c *Console) checkout(ctx context.Context) {
	if c.draft.Empty() {
		c.printf("Your order is empty, add something first.\n")
		return
	}

	name, ok := c.prompt("Your name: ")
	if !ok {
		return
	}
	phone, ok := c.prompt("Phone: ")
	if !ok {
		return
	}
	email, _ := c.prompt("Email (optional): ")
	address, _ := c.prompt("Delivery address (optional): ")
	notes, _ := c.prompt("Notes (optional): ")

	confirmation, err := c.orders.Submit(ctx, c.draft, ordersvc.CheckoutInfo{
		Name:            name,
		Phone:           phone,
		Email:           email,
		DeliveryAddress: address,
		Notes:           notes,
	})
	if err != nil {
		c.printAppError(err)
		c.printf("Your selection is preserved, you can try again.\n")
		return
	}
	c.printf("\nOrder placed! Number: %s, total: %s\n",
		confirmation.OrderNumber, confirmation.Total.StringFixed(2))
}

func (c *Console) findOrder(ctx context.Context) {
	number, ok := c.prompt("Order number: ")
	if !ok || number == "" {
		return
	}
	order, err := c.orders.ByNumber(ctx, number)
	if err != nil {
		c.printAppError(err)
		return
	}
	c.printOrder(order)
}

func (c *Console) printOrder(order *entity.Order) {
	c.printf("\nOrder %s (%s)\n", order.Number, order.Status)
	c.printf("Customer: %s, %s\n", order.CustomerName, order.CustomerPhone)
	if order.DeliveryAddress != "" {
		c.printf("Deliver to: %s\n", order.DeliveryAddress)
	}
	for _, item := range order.Items {
		c.printf("  %d x %s @ %s = %s\n",
			item.Quantity, item.MenuItemName,
			item.PriceAtOrder.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	c.printf("Total: %s\n", order.TotalAmount.StringFixed(2))
}

func (c *Console) adminPanel(ctx context.Context) {
	supplied, ok := c.prompt("Admin passphrase: ")
	if !ok {
		return
	}
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(c.cfg.Admin.Passphrase)) != 1 {
		c.printf("Wrong passphrase.\n")
		return
	}

	for {
		c.printf("\n==== Admin Panel ====\n")
		c.printf(" 1. Recent orders\n")
		c.printf(" 2. Update order status\n")
		c.printf(" 3. Add menu item\n")
		c.printf(" 4. Set item availability\n")
		c.printf(" 5. Statistics\n")
		c.printf(" 6. Archive summary\n")
		c.printf(" 0. Back\n")

		choice, ok := c.prompt("Select: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.recentOrders(ctx)
		case "2":
			c.updateStatus(ctx)
		case "3":
			c.addMenuItem(ctx)
		case "4":
			c.setAvailability(ctx)
		case "5":
			c.statistics(ctx)
		case "6":
			c.archiveSummary()
		case "0":
			return
		default:
			c.printf("Unknown choice %q\n", choice)
		}
	}
}

func (c *Console) recentOrders(ctx context.Context) {
	orders := c.orders.Recent(ctx, 20)
	if len(orders) == 0 {
		c.printf("No orders yet.\n")
		return
	}
	for _, order := range orders {
		c.printf(" #%d %s  %s  %-10s  %s  %s\n",
			order.ID, order.Number,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.Status, order.TotalAmount.StringFixed(2),
			order.CustomerName)
	}
}

func (c *Console) updateStatus(ctx context.Context) {
	id, ok := c.promptInt64("Order id: ")
	if !ok {
		return
	}
	c.printf("Statuses: %s\n", strings.Join(statusNames(), ", "))
	status, ok := c.prompt("New status: ")
	if !ok {
		return
	}
	if err := c.orders.UpdateStatus(ctx, id, status); err != nil {
		c.printAppError(err)
		return
	}
	c.printf("Order %d is now %s.\n", id, status)
}

func (c *Console) addMenuItem(ctx context.Context) {
	name, ok := c.prompt("Name: ")
	if !ok {
		return
	}
	description, _ := c.prompt("Description: ")
	priceRaw, ok := c.prompt("Price: ")
	if !ok {
		return
	}
	categoryID, ok := c.promptInt64("Category id: ")
	if !ok {
		return
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		c.printf("Not a price: %q\n", priceRaw)
		return
	}

	item := &entity.MenuItem{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
	}
	if err := c.menu.AddItem(ctx, item); err != nil {
		c.printAppError(err)
		return
	}
	c.printf("Added %q to the menu.\n", item.Name)
}

func (c *Console) setAvailability(ctx context.Context) {
	id, ok := c.promptInt64("Menu item id: ")
	if !ok {
		return
	}
	answer, ok := c.prompt("Available? (y/n): ")
	if !ok {
		return
	}
	available := strings.HasPrefix(strings.ToLower(answer), "y")
	reason := ""
	if !available {
		reason, _ = c.prompt("Reason (optional): ")
	}
	if err := c.menu.SetAvailability(ctx, id, available, reason); err != nil {
		c.printAppError(err)
		return
	}
	c.printf("Availability updated.\n")
}

func (c *Console) statistics(ctx context.Context) {
	stats := c.orders.Statistics(ctx, nil, nil)
	c.printf("\n==== Statistics ====\n")
	c.printf("Orders:           %d\n", stats.TotalOrders)
	c.printf("Revenue:          %s\n", stats.TotalRevenue.StringFixed(2))
	c.printf("Avg order value:  %s\n", stats.AvgOrderValue.StringFixed(2))
	c.printf("Unique customers: %d\n", stats.UniqueCustomers)
	if len(stats.PopularItems) > 0 {
		c.printf("Top sellers:\n")
		for _, item := range stats.PopularItems {
			c.printf("  %-30s %d\n", item.Name, item.Quantity)
		}
	}
}

func (c *Console) archiveSummary() {
	summary, err := c.archive.Summarize()
	if err != nil {
		c.printf("Archive unavailable: %v\n", err)
		return
	}
	c.printf("\n==== Archived Receipts ====\n")
	c.printf("Receipts: %d, revenue: %s\n", summary.TotalOrders, summary.TotalRevenue.StringFixed(2))
	for _, name := range summary.TopItems(10) {
		c.printf("  %-30s %d\n", name, summary.ItemsSold[name])
	}
}

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) promptInt(label string) (int, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.printf("Not a number: %q\n", raw)
		return 0, false
	}
	return value, true
}

func (c *Console) promptInt64(label string) (int64, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.printf("Not a number: %q\n", raw)
		return 0, false
	}
	return value, true
}

func (c *Console) printAppError(err error) {
	appErr := errorbank.From(err)
	c.printf("Error: %s\n", appErr.Message())
	if reason, ok := appErr.Details()["reason"]; ok {
		c.printf("Reason: %v\n", reason)
	}
	if appErr.Kind() == errorbank.KindInternal {
		c.logger.Error("console operation failed", zap.Error(err))
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func statusNames() []string {
	statuses := entity.OrderStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, string(status))
	}
	return names
}
