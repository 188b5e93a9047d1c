package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsphweid/leadsheet/constants"
	"github.com/jsphweid/leadsheet/publish"
)

var (
	publishBucket string
	publishRegion string
	publishPrefix string
	publishDryRun bool
)

func init() {
	publishCmd.Flags().StringVar(&publishBucket, "bucket", "", "S3 bucket, defaults to $LEADSHEET_S3_BUCKET")
	publishCmd.Flags().StringVar(&publishRegion, "region", constants.GetS3Region(), "S3 region")
	publishCmd.Flags().StringVar(&publishPrefix, "prefix", "", "key prefix inside the bucket")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "log uploads without performing them")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Publishes the songbook to S3",
	Long:  `Uploads a rendered book directory to an S3 bucket.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := constants.GetOutputDir()
		if len(args) == 1 {
			dir = args[0]
		}
		cobra.CheckErr(runPublish(dir))
	},
}

func runPublish(dir string) error {
	bucket := publishBucket
	if bucket == "" {
		bucket = constants.GetS3Bucket()
	}
	p, err := publish.New(bucket, publishRegion, newLogger())
	if err != nil {
		return err
	}
	p.Prefix = publishPrefix
	p.DryRun = publishDryRun
	return p.PublishDir(dir)
}
