// Command stayfinder is a terminal front-end for the booking marketplace
// API, wiring the full client stack: config, logger, durable session
// storage, transport, services, state store, and a console notification
// renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/service"
	"github.com/AbdulAhadaa/stayfinder-client/internal/infrastructure/config"
	"github.com/AbdulAhadaa/stayfinder-client/internal/infrastructure/storage"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/store"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
	"github.com/AbdulAhadaa/stayfinder-client/pkg/logger"
)

const usage = `usage: stayfinder <command> [flags]

commands:
  health                     probe the backend
  register                   create an account (-first -last -email -password -role)
  login                      sign in (-email -password)
  logout                     sign out and clear the stored session
  me                         show the signed-in profile
  verify-email               redeem a verification token (-token)
  resend-verification        request a fresh verification email (-email)
  forgot-password            request a reset link (-email)
  reset-password             redeem a reset token (-token -password)
  rooms                      list rooms (-location -min-price -max-price -capacity -amenities)
  room                       show one room (-id)
  room-create                create a listing (-title -description -location -price -capacity -amenities)
  book                       create a booking (-room -check-in -check-out -price)
  bookings                   list my bookings
  booking-status             update a booking (-id -status)
  booking-cancel             cancel a booking (-id)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  logLevel(cfg),
		Pretty: cfg.Environment == "development",
	})

	sessions, err := buildSessionStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("session storage unavailable")
	}

	client := transport.New(transport.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Tokens:  sessions,
		Logger:  log,
	})

	events := notify.NewDispatcher()
	events.Subscribe(notify.TypeToast, func(e notify.Event) {
		mark := "ok"
		if e.Level == notify.LevelError {
			mark = "err"
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", mark, e.Message)
	})
	events.Subscribe(notify.TypeSessionExpired, func(e notify.Event) {
		fmt.Fprintf(os.Stderr, "[err] %s Run `stayfinder login`.\n", e.Message)
	})

	st := store.New(store.Deps{
		Auth:     service.NewAuthService(client, log),
		Rooms:    service.NewRoomService(client, log),
		Bookings: service.NewBookingService(client, log),
		Sessions: sessions,
		Events:   events,
		Logger:   log,
	})
	client.OnUnauthorized(st.HandleUnauthorized)

	ctx := context.Background()
	if err := run(ctx, cfg, client, st, os.Args[1], os.Args[2:]); err != nil {
		os.Exit(1)
	}
}

func logLevel(cfg *config.Config) string {
	if cfg.Debug {
		return "debug"
	}
	return cfg.LogLevel
}

func buildSessionStorage(cfg *config.Config) (ports.SessionStorage, error) {
	if cfg.Session.RedisAddr != "" {
		client, err := storage.Connect(context.Background(), storage.RedisConfig{
			Addr: cfg.Session.RedisAddr,
			DB:   cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client, strings.ToLower(cfg.AppName)), nil
	}
	return storage.NewFileStore(cfg.Session.Dir)
}

func run(ctx context.Context, cfg *config.Config, client *transport.Client, st *store.Store, cmd string, args []string) error {
	switch cmd {
	case "health":
		status, err := client.Health(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s backend unreachable: %v\n", cfg.AppName, err)
			return err
		}
		fmt.Printf("%s backend: %s (response time %s)\n", cfg.AppName, status.Status, status.ResponseTime)
		return nil

	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		role := fs.String("role", domain.RoleGuest, "guest or host")
		_ = fs.Parse(args)
		if *role != "" && !domain.ValidRole(*role) {
			fmt.Fprintln(os.Stderr, domain.ErrInvalidRole)
			return domain.ErrInvalidRole
		}
		return st.Auth.Register(ctx, ports.RegisterInput{
			FirstName: *first, LastName: *last,
			Email: *email, Password: *password, Role: *role,
		})

	case "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		return st.Auth.Login(ctx, ports.LoginInput{Email: *email, Password: *password})

	case "logout":
		st.Auth.Logout()
		return nil

	case "me":
		if !st.Auth.Session().Authenticated() {
			fmt.Fprintf(os.Stderr, "not signed in: %v\n", domain.ErrNoSession)
			return domain.ErrNoSession
		}
		if err := st.Auth.GetCurrentUser(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "cannot load profile: %v\n", err)
			return err
		}
		state := st.Auth.State()
		fmt.Printf("%s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
		return nil

	case "verify-email":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		token := fs.String("token", "", "verification token")
		_ = fs.Parse(args)
		return st.Auth.VerifyEmail(ctx, *token)

	case "resend-verification":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email")
		_ = fs.Parse(args)
		return st.Auth.ResendVerification(ctx, *email)

	case "forgot-password":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "email")
		_ = fs.Parse(args)
		return st.Auth.ForgotPassword(ctx, *email)

	case "reset-password":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		token := fs.String("token", "", "reset token")
		password := fs.String("password", "", "new password")
		_ = fs.Parse(args)
		return st.Auth.ResetPassword(ctx, *token, *password)

	case "rooms":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		location := fs.String("location", "", "location filter")
		minPrice := fs.Float64("min-price", 0, "minimum nightly price")
		maxPrice := fs.Float64("max-price", 0, "maximum nightly price")
		capacity := fs.Int("capacity", 0, "minimum capacity")
		amenities := fs.String("amenities", "", "comma-separated amenities")
		_ = fs.Parse(args)
		filters := domain.RoomFilters{
			Location: *location,
			MinPrice: *minPrice,
			MaxPrice: *maxPrice,
			Capacity: *capacity,
		}
		if *amenities != "" {
			filters.Amenities = strings.Split(*amenities, ",")
		}
		if err := st.Rooms.List(ctx, filters); err != nil {
			return err
		}
		for _, r := range st.Rooms.State().Rooms {
			fmt.Printf("%s  %-30s %-15s %7.2f/night  sleeps %d\n", r.ID, r.Title, r.Location, r.PricePerNight, r.Capacity)
		}
		return nil

	case "room":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "room id")
		_ = fs.Parse(args)
		if err := st.Rooms.GetByID(ctx, *id); err != nil {
			return err
		}
		r := st.Rooms.State().CurrentRoom
		fmt.Printf("%s (%s)\n%s\n%.2f/night, sleeps %d, rating %.1f\namenities: %s\n",
			r.Title, r.Location, r.Description, r.PricePerNight, r.Capacity, r.Rating,
			strings.Join(r.Amenities, ", "))
		return nil

	case "room-create":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		title := fs.String("title", "", "listing title")
		description := fs.String("description", "", "description")
		location := fs.String("location", "", "location")
		price := fs.Float64("price", 0, "nightly price")
		capacity := fs.Int("capacity", 1, "capacity")
		amenities := fs.String("amenities", "", "comma-separated amenities")
		_ = fs.Parse(args)
		in := ports.CreateRoomInput{
			Title:         *title,
			Description:   *description,
			Location:      *location,
			PricePerNight: *price,
			Capacity:      *capacity,
			IsAvailable:   true,
		}
		if *amenities != "" {
			in.Amenities = strings.Split(*amenities, ",")
		}
		return st.Rooms.Create(ctx, in)

	case "book":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		roomID := fs.String("room", "", "room id")
		checkIn := fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
		checkOut := fs.String("check-out", "", "check-out date (YYYY-MM-DD)")
		price := fs.Float64("price", 0, "total price")
		_ = fs.Parse(args)
		return st.Bookings.Create(ctx, ports.CreateBookingInput{
			RoomID:       *roomID,
			CheckInDate:  *checkIn,
			CheckOutDate: *checkOut,
			TotalPrice:   *price,
		})

	case "bookings":
		if err := st.Bookings.ListForUser(ctx); err != nil {
			return err
		}
		for _, b := range st.Bookings.State().Bookings {
			fmt.Printf("%s  room %s  %s -> %s  %7.2f  [%s]\n",
				b.ID, b.RoomID, b.CheckInDate, b.CheckOutDate, b.TotalPrice, b.Status)
		}
		return nil

	case "booking-status":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "booking id")
		status := fs.String("status", "", "new status")
		_ = fs.Parse(args)
		next := domain.BookingStatus(*status)
		if current := findBooking(st, *id); current != nil && !current.Status.CanTransitionTo(next) {
			fmt.Fprintf(os.Stderr, "booking is %s; it cannot become %s\n", current.Status, next)
			return domain.ErrInvalidTransition
		}
		return st.Bookings.UpdateStatus(ctx, *id, next)

	case "booking-cancel":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "booking id")
		_ = fs.Parse(args)
		return st.Bookings.Cancel(ctx, *id)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// findBooking looks the booking up in the already-loaded collection; a miss
// just skips the client-side transition check.
func findBooking(st *store.Store, id string) *domain.Booking {
	for _, b := range st.Bookings.State().Bookings {
		if b.ID == id {
			clone := b
			return &clone
		}
	}
	return nil
}
