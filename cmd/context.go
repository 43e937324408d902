package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gpp-woo/publicationbank/internal/audit"
	"github.com/gpp-woo/publicationbank/internal/config"
	"github.com/gpp-woo/publicationbank/internal/server"
	"github.com/gpp-woo/publicationbank/internal/service"
	"github.com/gpp-woo/publicationbank/internal/store"
)

var actorID string
var actorName string

// services wires the service layer against the configured database and
// index queue, the same way the worker does.
func services() (*service.PublicationService, *service.DocumentService, error) {
	cnf := config.LoadConfig()

	db := config.GetDb(cnf)
	st := store.NewGormStore(db)

	queue, err := server.NewQueue(cnf)
	if err != nil {
		return nil, nil, err
	}

	auditLog := audit.NewLogger(server.Codec(cnf))

	pubs := service.NewPublicationService(st, queue, auditLog, cnf.PublicBaseURL)
	docs := service.NewDocumentService(st, queue, auditLog, cnf.PublicBaseURL)

	return pubs, docs, nil
}

func actor() audit.Actor {
	return audit.Actor{ID: actorID, DisplayName: actorName}
}

func bindActorFlags(command *cobra.Command) {
	command.Flags().StringVar(&actorID, "actor-id", "cli", "actor identifier recorded in the audit trail")
	command.Flags().StringVar(&actorName, "actor-name", "cli", "actor display name recorded in the audit trail")
}

func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if cmd.Flag(required).Changed == false {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Yellow("provided: %s\n", provided)
		}

		return true
	}

	return false
}
