// Command admin drives the management workflows from the terminal:
// list a collection, create or edit a record with its images, delete
// behind a confirmation. One invocation runs one operation.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/backend"
	"github.com/MontseAlvarez09/Alojamientos/internal/adapters/observability"
	"github.com/MontseAlvarez09/Alojamientos/internal/schema"
	"github.com/MontseAlvarez09/Alojamientos/internal/session"
	"github.com/MontseAlvarez09/Alojamientos/internal/shared"
	"github.com/MontseAlvarez09/Alojamientos/internal/workflow"
)

// repeated collects a repeatable string flag, e.g. -set nombre=Centro -set correo=x@y.mx
type repeated []string

func (r *repeated) String() string     { return strings.Join(*r, ",") }
func (r *repeated) Set(v string) error { *r = append(*r, v); return nil }

type intList []int

func (l *intList) String() string { return fmt.Sprint(*l) }
func (l *intList) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*l = append(*l, n)
	return nil
}

func main() {
	var (
		resource    = flag.String("resource", "", "collection: hoteles, cuartos, politica, terminos, vision, mision, perfil")
		op          = flag.String("op", "list", "operation: list, create, edit, delete")
		id          = flag.Int64("id", 0, "record id for edit/delete")
		userID      = flag.Int64("user", 0, "authenticated user id sent with every request")
		cover       = flag.String("cover", "", "path to the cover image")
		removeCover = flag.Bool("remove-cover", false, "drop the stored cover image")
		yes         = flag.Bool("yes", false, "skip the delete confirmation prompt")

		sets    repeated
		gallery repeated
		removed intList
	)
	flag.Var(&sets, "set", "field=value, repeatable")
	flag.Var(&gallery, "gallery", "path to a gallery image, repeatable")
	flag.Var(&removed, "remove-image", "index of a stored gallery image to remove, repeatable")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	sch, ok := schema.ByName(*resource)
	if !ok {
		log.Fatal().Str("resource", *resource).Msg("unknown resource")
	}

	ses := session.New()
	if *userID != 0 {
		ses.Login(session.User{ID: *userID})
	}
	client := backend.New(cfg.BackendBase, ses, cfg.BackendRPS)
	ctrl := workflow.New(sch, client, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Load(ctx); err != nil {
		log.Fatal().Err(err).Str("detail", ctrl.Banner()).Msg("load failed")
	}

	var err error
	switch *op {
	case "list":
		err = runList(ctrl)
	case "create", "edit":
		err = runSubmit(ctx, ctrl, *op, *id, sets, gallery, removed, *cover, *removeCover)
	case "delete":
		err = runDelete(ctx, ctrl, *id, *yes)
	default:
		log.Fatal().Str("op", *op).Msg("unknown operation")
	}
	if err != nil {
		if msg := ctrl.Banner(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		for field, msg := range ctrl.FieldErrors() {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		log.Fatal().Err(err).Msg("operation failed")
	}
}

func runList(ctrl *workflow.Controller) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, it := range ctrl.Items() {
		fmt.Fprintf(w, "%d\t%s\n", it.ID, it.Label)
	}
	return nil
}

func runSubmit(ctx context.Context, ctrl *workflow.Controller, op string, id int64,
	sets, gallery []string, removed []int, cover string, removeCover bool) error {

	if op == "edit" {
		if err := ctrl.OpenEdit(id); err != nil {
			return err
		}
	} else {
		if err := ctrl.OpenCreate(); err != nil {
			return err
		}
	}

	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("bad -set %q, want field=value", kv)
		}
		if !ctrl.SetField(name, value) {
			return fmt.Errorf("field %q rejected value %q", name, value)
		}
	}
	for _, ord := range removed {
		ctrl.RemoveExistingImage(ord)
	}
	if removeCover {
		ctrl.RemoveCoverImage()
	}
	if cover != "" {
		if err := ctrl.AttachCover(cover); err != nil {
			return err
		}
	}
	if len(gallery) > 0 {
		if err := ctrl.AttachGallery(gallery...); err != nil {
			return err
		}
	}
	return ctrl.Submit(ctx)
}

func runDelete(ctx context.Context, ctrl *workflow.Controller, id int64, yes bool) error {
	if err := ctrl.RequestDelete(id); err != nil {
		return err
	}
	if !yes && !confirm(id) {
		ctrl.CancelDelete()
		fmt.Println("cancelado")
		return nil
	}
	return ctrl.ConfirmDelete(ctx)
}

func confirm(id int64) bool {
	fmt.Printf("¿Eliminar el registro %d? Esta acción no se puede deshacer [y/N]: ", id)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "si" || answer == "s"
}
