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

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "document commands",
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	docCmd.AddCommand(createDocCmd())
	docCmd.AddCommand(getDocCmd())
	docCmd.AddCommand(completeDocCmd())
	docCmd.AddCommand(revokeDocCmd())
	docCmd.AddCommand(deleteDocCmd())
}

func createDocCmd() *cobra.Command {
	var pubID string
	var title string
	var owner string
	var fileName string
	var fileFormat string
	var fileSize int64

	var required = []string{"pub-id", "title", "owner"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "attach a document to a publication",
		Long:    `attach a document to a publication; the document takes the status implied by the publication`,
		Example: "pubbank doc create -p <pub-uuid> -t <title> -o <owner> -f report.pdf",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(pubID)
			if err != nil {
				logrus.Error("invalid publication id, expected a valid uuid")
				return
			}

			_, docs, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			doc, err := docs.CreateDocument(context.Background(), service.CreateDocumentRequest{
				PublicationUUID: id,
				Actor:           actor(),
				OwnerIdentifier: owner,
				OfficialTitle:   title,
				CreationDate:    time.Now(),
				FileName:        fileName,
				FileFormat:      fileFormat,
				FileSize:        fileSize,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document created with id: %s, status: %s", doc.UUID, doc.Status)
		},
	}

	command.Flags().StringVarP(&pubID, "pub-id", "p", "", "publication uuid (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "official title (required)")
	command.Flags().StringVarP(&owner, "owner", "o", "", "owner identifier (required)")
	command.Flags().StringVarP(&fileName, "file", "f", "", "file name")
	command.Flags().StringVar(&fileFormat, "format", "", "file format")
	command.Flags().Int64Var(&fileSize, "size", 0, "file size in bytes")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func getDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a document",
		Example: "pubbank doc get -d <doc-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Error("invalid document id, expected a valid uuid")
				return
			}

			_, docs, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			doc, err := docs.GetDocument(context.Background(), id)
			if err != nil {
				logrus.Error(err)
				return
			}

			renderDocuments(doc)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document uuid (required)")

	return command
}

func completeDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "complete",
		Short:   "mark a document upload as complete",
		Example: "pubbank doc complete -d <doc-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Error("invalid document id, expected a valid uuid")
				return
			}

			_, docs, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			complete := true
			doc, err := docs.UpdateDocument(context.Background(), service.UpdateDocumentRequest{
				UUID:           id,
				Actor:          actor(),
				UploadComplete: &complete,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s upload complete", doc.UUID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document uuid (required)")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func revokeDocCmd() *cobra.Command {
	var docID string
	var remarks string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "revoke",
		Short:   "revoke a published document",
		Example: "pubbank doc revoke -d <doc-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Error("invalid document id, expected a valid uuid")
				return
			}

			_, docs, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			target := status.Revoked
			doc, err := docs.UpdateDocument(context.Background(), service.UpdateDocumentRequest{
				UUID:    id,
				Actor:   actor(),
				Remarks: remarks,
				Status:  &target,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s is now %s", doc.UUID, doc.Status)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document uuid (required)")
	command.Flags().StringVarP(&remarks, "remarks", "r", "", "remarks recorded in the audit trail")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func deleteDocCmd() *cobra.Command {
	var docID string

	var required = []string{"doc-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a document",
		Example: "pubbank doc delete -d <doc-uuid>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			id, err := uuid.Parse(docID)
			if err != nil {
				logrus.Error("invalid document id, expected a valid uuid")
				return
			}

			_, docs, err := services()
			if err != nil {
				logrus.Error(err)
				return
			}

			if err := docs.DeleteDocument(context.Background(), id, actor()); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document deleted: %s", docID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document uuid (required)")
	bindActorFlags(command)

	command.Flags().SortFlags = false

	return command
}

func renderDocuments(docs ...*model.Document) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Status", "File", "Size", "Upload Complete"})
	for _, doc := range docs {
		table.Append([]string{
			doc.UUID,
			doc.OfficialTitle,
			string(doc.Status),
			doc.FileName,
			strconv.FormatInt(doc.FileSize, 10),
			strconv.FormatBool(doc.UploadComplete),
		})
	}
	table.Render()
}
