package cmd

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gpp-woo/publicationbank/internal/model"
	"github.com/gpp-woo/publicationbank/internal/service"
	"github.com/gpp-woo/publicationbank/internal/status"
)

var pubCmd = &cobra.Command{
	Use:   "pub",
	Short: "publication commands",
}

func init() {
	rootCmd.AddCommand(pubCmd)
	pubCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	pubCmd.AddCommand(createPubCmd())
	pubCmd.AddCommand(getPubCmd())
	pubCmd.AddCommand(listPubCmd())
	pubCmd.AddCommand(publishPubCmd())
	pubCmd.AddCommand(revokePubCmd())
	pubCmd.AddCommand(deletePubCmd())
}

func createPubCmd() *cobra.Command {
	var title string
	var shortTitle string
	var description string
	var owner string
	var publisher string
	var responsible string
	var categories []string
	var publish bool

	var required = []string{"title", "owner"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a publication",
		Example: "pubbank pub create -t <title> -o <owner> --publisher <org-uuid> -c <category-uuid> --publish",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			pubs, _, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			req := service.CreatePublicationRequest{
				Actor:           actor(),
				OwnerIdentifier: owner,
				OfficialTitle:   title,
				ShortTitle:      shortTitle,
				Description:     description,
				Status:          status.Concept,
			}
			if publish {
				req.Status = status.Published
			}

			if publisher != "" {
				id, err := uuid.Parse(publisher)
				if err != nil {
					logrus.Error("invalid publisher id, expected a valid uuid")
					return
				}
				req.PublisherUUID = &id
			}
			if responsible != "" {
				id, err := uuid.Parse(responsible)
				if err != nil {
					logrus.Error("invalid responsible id, expected a valid uuid")
					return
				}
				req.ResponsibleUUID = &id
			}
			for _, category := range categories {
				id, err := uuid.Parse(category)
				if err != nil {
					logrus.Error("invalid category id, expected a valid uuid")
					return
				}
				req.CategoryUUIDs = append(req.CategoryUUIDs, id)
			}

			pub, err := pubs.CreatePublication(context.Background(), req)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("publication created with id: %s", pub.UUID)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "official title (required)")
	command.Flags().StringVarP(&shortTitle, "short-title", "s", "", "short title")
	command.Flags().StringVarP(&description, "description", "d", "", "description")
	command.Flags().StringVarP(&owner, "owner", "o", "", "owner identifier (required)")
	command.Flags().StringVar(&publisher, "publisher", "", "publisher organisation uuid")
	command.Flags().StringVar(&responsible, "responsible", "", "responsible organisation uuid")
	command.Flags().StringSliceVarP(&categories, "category", "c", nil, "information category uuid (repeatable)")
	command.Flags().BoolVar(&publish, "publish", false, "create directly in the published state")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func getPubCmd() *cobra.Command {
	var pubID string

	var required = []string{"pub-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a publication",
		Example: "pubbank pub get -p <pub-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(pubID)
			if err != nil {
				logrus.Error("invalid publication id, expected a valid uuid")
				return
			}

			pubs, _, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			pub, err := pubs.GetPublication(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			renderPublications(pub)
		},
	}

	command.Flags().StringVarP(&pubID, "pub-id", "p", "", "publication uuid (required)")

	return command
}

func listPubCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "list",
		Short:   "list publications",
		Example: "pubbank pub list",
		Run: func(cmd *cobra.Command, args []string) {
			pubs, _, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			items, total, err := pubs.ListPublications(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			renderPublications(items...)
			logrus.Infof("total: %d", total)
		},
	}

	return command
}

func publishPubCmd() *cobra.Command {
	return transitionPubCmd("publish", status.Published)
}

func revokePubCmd() *cobra.Command {
	return transitionPubCmd("revoke", status.Revoked)
}

func transitionPubCmd(verb string, target status.Status) *cobra.Command {
	var pubID string
	var remarks string

	var required = []string{"pub-id"}

	command := &cobra.Command{
		Use:     verb,
		Short:   verb + " a publication and cascade to its documents",
		Example: "pubbank pub " + verb + " -p <pub-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(pubID)
			if err != nil {
				logrus.Error("invalid publication id, expected a valid uuid")
				return
			}

			pubs, _, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			pub, err := pubs.UpdatePublication(context.Background(), service.UpdatePublicationRequest{
				UUID:    id,
				Actor:   actor(),
				Remarks: remarks,
				Status:  &target,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("publication %s is now %s", pub.UUID, pub.Status)
		},
	}

	command.Flags().StringVarP(&pubID, "pub-id", "p", "", "publication uuid (required)")
	command.Flags().StringVarP(&remarks, "remarks", "r", "", "remarks recorded in the audit trail")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func deletePubCmd() *cobra.Command {
	var pubID string

	var required = []string{"pub-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a publication and its documents",
		Example: "pubbank pub delete -p <pub-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(pubID)
			if err != nil {
				logrus.Error("invalid publication id, expected a valid uuid")
				return
			}

			pubs, _, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			if err := pubs.DeletePublication(context.Background(), id, actor()); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("publication deleted: %s", pubID)
		},
	}

	command.Flags().StringVarP(&pubID, "pub-id", "p", "", "publication uuid (required)")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func renderPublications(pubs ...*model.Publication) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Status", "Categories", "Nomination", "Action Date"})
	for _, pub := range pubs {
		actionDate := ""
		if pub.ArchiveActionDate != nil {
			actionDate = pub.ArchiveActionDate.Format(time.DateOnly)
		}
		table.Append([]string{
			pub.UUID,
			pub.OfficialTitle,
			string(pub.Status),
			strconv.Itoa(len(pub.Categories)),
			string(pub.ArchiveNomination),
			actionDate,
		})
	}
	table.Render()
}
