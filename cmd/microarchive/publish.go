package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"microarchive/internal/publish"
)

func newPublishCmd() *cobra.Command {
	var (
		req      publish.Request
		dataFile string
		eadOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish an archive website",
		Long: `List the scanned images under a prefix and publish them as a website with an
EAD finding aid and a IIIF manifest.

Examples:
  microarchive publish --prefix scans/ --title "Family Papers"
  microarchive publish --key 3f2a... --wait          # Republish an existing site
  microarchive publish --title "Draft" --ead         # Print the EAD and exit
  microarchive publish --data-from-file papers.yaml  # Read metadata from a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(os.Stderr)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if dataFile != "" {
				data, err := loadDataFile(dataFile)
				if err != nil {
					return err
				}
				req.Data = data
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if eadOnly {
				doc, err := a.service.RenderEAD(ctx, req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, doc)
				return err
			}

			res, err := a.service.Publish(ctx, req)
			if err != nil {
				return err
			}
			printResult(out, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Prefix, "prefix", "", "Storage prefix holding the scanned images (default from S3_PREFIX)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Archive title")
	cmd.Flags().StringVar(&req.SiteKey, "key", "", "Key of an existing site to update")
	cmd.Flags().StringVar(&req.ImageFormat, "iiif-ext", "", "Image format extension served by the IIIF server (default from IIIF_IMAGE_FORMAT)")
	cmd.Flags().BoolVar(&req.Wait, "wait", false, "Wait until the site is deployed")
	cmd.Flags().BoolVar(&eadOnly, "ead", false, "Print the EAD document and exit without publishing")
	cmd.Flags().StringVar(&dataFile, "data-from-file", "", "YAML or JSON file with archive metadata")
	cmd.Flags().BoolVar(&req.Refresh, "refresh", false, "Ignore the cached listing of the prefix")

	return cmd
}

func printResult(w io.Writer, res publish.Result) {
	fmt.Fprintf(w, "Published %q (%d items)\n", res.Name, res.ItemCount)
	fmt.Fprintf(w, "  Site:     %s\n", res.URL)
	fmt.Fprintf(w, "  EAD:      %s\n", res.EADURL)
	fmt.Fprintf(w, "  Manifest: %s\n", res.ManifestURL)
	fmt.Fprintf(w, "  Status:   %s\n", res.Site.Status)
	fmt.Fprintf(w, "  Key:      %s\n", res.Site.ID)
}
