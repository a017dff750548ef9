package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgectl/edgectl/filter"
	"github.com/edgectl/edgectl/storage"
)

var bucketAccess string

// bucketCmd groups bucket operations
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage storage buckets",
}

var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List buckets",
	RunE:  runBucketList,
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  runBucketCreate,
}

var bucketGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  runBucketGet,
}

var bucketUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Change a bucket's edge access mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runBucketUpdate,
}

var bucketDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  runBucketDelete,
}

func init() {
	rootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketListCmd)
	bucketCmd.AddCommand(bucketCreateCmd)
	bucketCmd.AddCommand(bucketGetCmd)
	bucketCmd.AddCommand(bucketUpdateCmd)
	bucketCmd.AddCommand(bucketDeleteCmd)

	bucketListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'EdgeAccess == \"read_only\"'")
	bucketListCmd.Flags().IntVar(&pageFlag, "page", 0, "page number")
	bucketListCmd.Flags().IntVar(&sizeFlag, "page-size", 0, "page size")

	bucketCreateCmd.Flags().StringVar(&bucketAccess, "access", string(storage.AccessReadWrite), "edge access mode (read_only, read_write, restricted)")
	bucketUpdateCmd.Flags().StringVar(&bucketAccess, "access", "", "edge access mode (read_only, read_write, restricted)")
	bucketUpdateCmd.MarkFlagRequired("access")
}

func runBucketList(cmd *cobra.Command, args []string) error {
	page, err := storageClient.ListBuckets(context.Background(), listOptions())
	if err != nil {
		return err
	}

	buckets := page.Results
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return err
		}
		var kept []storage.Bucket
		for _, b := range buckets {
			if f.Match(map[string]any{"Name": b.Name, "EdgeAccess": string(b.EdgeAccess)}) {
				kept = append(kept, b)
			}
		}
		buckets = kept
	}

	if len(buckets) == 0 {
		fmt.Println("No buckets found.")
		return nil
	}

	fmt.Printf("%-40s %s\n", "NAME", "EDGE ACCESS")
	fmt.Println(strings.Repeat("-", 55))
	for _, b := range buckets {
		fmt.Printf("%-40s %s\n", b.Name, b.EdgeAccess)
	}
	fmt.Printf("\n%d of %d buckets\n", len(buckets), page.Count)
	return nil
}

func runBucketCreate(cmd *cobra.Command, args []string) error {
	access := storage.EdgeAccess(bucketAccess)
	if !access.Valid() {
		return fmt.Errorf("invalid access mode: %s", bucketAccess)
	}

	bucket, err := storageClient.CreateBucket(context.Background(), args[0], access)
	if err != nil {
		return err
	}

	fmt.Printf("Created bucket %s (%s)\n", bucket.Name, bucket.EdgeAccess)
	return nil
}

func runBucketGet(cmd *cobra.Command, args []string) error {
	bucket, err := storageClient.GetBucket(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", bucket.Name)
	fmt.Printf("Edge access: %s\n", bucket.EdgeAccess)
	return nil
}

func runBucketUpdate(cmd *cobra.Command, args []string) error {
	access := storage.EdgeAccess(bucketAccess)
	if !access.Valid() {
		return fmt.Errorf("invalid access mode: %s", bucketAccess)
	}

	bucket, err := storageClient.UpdateBucket(context.Background(), args[0], access)
	if err != nil {
		return err
	}

	fmt.Printf("Updated bucket %s (%s)\n", bucket.Name, bucket.EdgeAccess)
	return nil
}

func runBucketDelete(cmd *cobra.Command, args []string) error {
	if err := storageClient.DeleteBucket(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted bucket %s\n", args[0])
	return nil
}
