// Command kiosk is a terminal frontend for the ordering backend. It drives
// the same customer and admin flows the web frontend does: browse the menu,
// build a cart, check out, and (after logging in) manage the catalog, order
// statuses and store settings.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tastyhub/ordering-service/internal/client"
	"github.com/tastyhub/ordering-service/internal/config"
	"github.com/tastyhub/ordering-service/internal/kiosk"
	"github.com/tastyhub/ordering-service/internal/models"
)

func main() {
	cfg, err := config.LoadKiosk()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	serverURL := flag.String("server", cfg.ServerURL, "backend base URL")
	pollEvery := flag.Duration("poll", cfg.PollInterval(), "background refresh interval")
	flag.Parse()

	api := client.New(*serverURL)
	controller := kiosk.NewController(api, kiosk.NewAPIVerifier(api))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go kiosk.NewPoller(controller, *pollEvery).Run(ctx)

	if err := controller.Refresh(ctx); err != nil {
		log.Printf("initial refresh failed: %v", err)
	}

	fmt.Printf("Connected to %s. Type 'help' for commands.\n", *serverURL)
	repl(ctx, controller)
}

func repl(ctx context.Context, c *kiosk.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		printNotices(c)
		fmt.Print(prompt(c))
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp(c.IsAdmin())
		case "menu":
			printMenu(c)
		case "add":
			if len(args) != 1 {
				fmt.Println("usage: add <item-id>")
				continue
			}
			c.AddToCart(args[0])
		case "inc", "dec":
			if len(args) != 1 {
				fmt.Printf("usage: %s <item-id>\n", cmd)
				continue
			}
			delta := 1
			if cmd == "dec" {
				delta = -1
			}
			c.AdjustCart(args[0], delta)
		case "rm":
			if len(args) != 1 {
				fmt.Println("usage: rm <item-id>")
				continue
			}
			c.AdjustCart(args[0], kiosk.RemoveEntirely)
		case "cart":
			printCart(c)
		case "checkout":
			if len(args) < 2 {
				fmt.Println("usage: checkout <name> <phone> [note...]")
				continue
			}
			c.SetCheckout(args[0], args[1], strings.Join(args[2:], " "))
			fmt.Println("Details saved. Run 'submit' to place the order.")
		case "submit":
			order, err := c.SubmitOrder(ctx)
			if err != nil {
				fmt.Println("could not submit:", err)
				continue
			}
			fmt.Printf("Order %s placed, total %d.\n", order.ID, order.TotalAmount)
		case "orders":
			printOrders(c)
		case "login":
			if len(args) != 2 {
				fmt.Println("usage: login <username> <password>")
				continue
			}
			if err := c.Login(ctx, args[0], args[1]); err != nil {
				fmt.Println("login failed:", err)
				continue
			}
			fmt.Println("Admin mode.")
		case "logout":
			c.Logout()
		case "advance":
			if !requireAdmin(c) {
				continue
			}
			if len(args) != 2 {
				fmt.Println("usage: advance <order-id> <PENDING|COOKING|COMPLETED|CANCELLED>")
				continue
			}
			if err := c.AdvanceOrder(ctx, args[0], models.OrderStatus(strings.ToUpper(args[1]))); err != nil {
				fmt.Println("could not update status:", err)
			}
		case "toggle":
			if !requireAdmin(c) {
				continue
			}
			if len(args) != 1 {
				fmt.Println("usage: toggle <item-id>")
				continue
			}
			if err := c.ToggleMenuItem(ctx, args[0]); err != nil {
				fmt.Println("could not toggle:", err)
			}
		case "additem":
			if !requireAdmin(c) {
				continue
			}
			if len(args) < 4 {
				fmt.Println("usage: additem <name> <price> <SET|MAIN|SNACK|DRINK> <description...>")
				continue
			}
			price, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("price must be a number")
				continue
			}
			req := models.MenuItemRequest{
				Name:        args[0],
				Price:       price,
				Category:    models.Category(strings.ToUpper(args[2])),
				Description: strings.Join(args[3:], " "),
				IsAvailable: true,
			}
			if err := c.AddMenuItem(ctx, req); err != nil {
				fmt.Println("could not add item:", err)
			}
		case "edititem":
			if !requireAdmin(c) {
				continue
			}
			if len(args) < 5 {
				fmt.Println("usage: edititem <item-id> <name> <price> <SET|MAIN|SNACK|DRINK> <description...>")
				continue
			}
			price, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("price must be a number")
				continue
			}
			avail := true
			for _, it := range c.Menu() {
				if it.ID == args[0] {
					avail = it.IsAvailable
				}
			}
			req := models.MenuItemRequest{
				Name:        args[1],
				Price:       price,
				Category:    models.Category(strings.ToUpper(args[3])),
				Description: strings.Join(args[4:], " "),
				IsAvailable: avail,
			}
			if err := c.UpdateMenuItem(ctx, args[0], req); err != nil {
				fmt.Println("could not update item:", err)
			}
		case "delitem":
			if !requireAdmin(c) {
				continue
			}
			if len(args) != 1 {
				fmt.Println("usage: delitem <item-id>")
				continue
			}
			err := c.DeleteMenuItem(ctx, args[0], func() bool {
				fmt.Print("Delete this item? [y/N] ")
				if !scanner.Scan() {
					return false
				}
				return strings.EqualFold(strings.TrimSpace(scanner.Text()), "y")
			})
			if err != nil {
				fmt.Println("could not delete:", err)
			}
		case "open", "close":
			if !requireAdmin(c) {
				continue
			}
			settings := c.Settings()
			settings.IsOpen = cmd == "open"
			if err := c.SaveSettings(ctx, settings); err != nil {
				fmt.Println("could not save settings:", err)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command; type 'help'")
		}
	}
}

func prompt(c *kiosk.Controller) string {
	if !c.Connected() {
		return "[offline] > "
	}
	if c.IsAdmin() {
		return fmt.Sprintf("[admin, %d pending] > ", c.PendingOrders())
	}
	return fmt.Sprintf("[cart: %d items, %d] > ", c.CartCount(), c.CartTotal())
}

func printNotices(c *kiosk.Controller) {
	for _, n := range c.Notices() {
		fmt.Println("*", n.Text)
	}
}

func printMenu(c *kiosk.Controller) {
	settings := c.Settings()
	fmt.Printf("== %s ==\n", settings.Name)
	if !settings.IsOpen {
		fmt.Println("(store closed)")
	}
	for _, cat := range models.Categories {
		items := c.MenuByCategory(cat)
		if len(items) == 0 {
			continue
		}
		fmt.Println(cat.Label() + ":")
		for _, it := range items {
			badge := c.ItemStatusLabel(it)
			if badge != "" {
				badge = " [" + badge + "]"
			}
			fmt.Printf("  %-36s %-20s %6d%s\n", it.ID, it.Name, it.Price, badge)
		}
	}
}

func printCart(c *kiosk.Controller) {
	items := c.CartItems()
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}
	for _, it := range items {
		fmt.Printf("  %dx %-20s %6d\n", it.Quantity, it.Name, it.Price*it.Quantity)
	}
	fmt.Printf("  total: %d\n", c.CartTotal())
}

func printOrders(c *kiosk.Controller) {
	orders := c.Orders()
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}
	for _, o := range orders {
		placed := time.UnixMilli(o.Timestamp).Format("15:04:05")
		fmt.Printf("  %s  %-9s  %s  %s (%s)  total %d\n",
			o.ID, o.Status, placed, o.CustomerName, o.CustomerPhone, o.TotalAmount)
		for _, line := range o.Lines {
			fmt.Printf("      %dx %s\n", line.Quantity, line.Name)
		}
	}
}

func requireAdmin(c *kiosk.Controller) bool {
	if c.IsAdmin() {
		return true
	}
	fmt.Println("admin login required")
	return false
}

func printHelp(admin bool) {
	fmt.Println(`Customer commands:
  menu                          show the catalog
  add <item-id>                 add one unit to the cart
  inc|dec|rm <item-id>          adjust or remove a cart entry
  cart                          show the cart
  checkout <name> <phone> [note...]
  submit                        place the order
  orders                        show the order ledger
  login <username> <password>   enter admin mode
  quit`)
	if admin {
		fmt.Println(`Admin commands:
  advance <order-id> <status>   move an order through its lifecycle
  toggle <item-id>              flip availability
  additem <name> <price> <category> <description...>
  edititem <item-id> <name> <price> <category> <description...>
  delitem <item-id>             delete a catalog item (asks to confirm)
  open | close                  set the store open flag
  logout`)
	}
}
