package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgectl/edgectl/filter"
	"github.com/edgectl/edgectl/storage"
)

var (
	objectBucket string
	objectOutput string
	syncPrefix   string
	syncDryRun   bool
	syncWorkers  int
)

// objectCmd groups object operations
var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects in a bucket",
}

var objectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objects in a bucket",
	RunE:  runObjectList,
}

var objectUploadCmd = &cobra.Command{
	Use:   "upload <key> <file>",
	Short: "Upload a file as an object",
	Args:  cobra.ExactArgs(2),
	RunE:  runObjectUpload,
}

var objectGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Download an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectGet,
}

var objectReplaceCmd = &cobra.Command{
	Use:   "replace <key> <file>",
	Short: "Replace an existing object's content",
	Args:  cobra.ExactArgs(2),
	RunE:  runObjectReplace,
}

var objectDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectDelete,
}

var objectSyncCmd = &cobra.Command{
	Use:   "sync <directory>",
	Short: "Upload a directory tree concurrently",
	Long: `Walk a local directory and upload every regular file to the bucket,
using the relative path as the object key. Uploads run concurrently with
a bounded worker count; individual failures are reported per key without
aborting the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runObjectSync,
}

func init() {
	rootCmd.AddCommand(objectCmd)
	objectCmd.AddCommand(objectListCmd)
	objectCmd.AddCommand(objectUploadCmd)
	objectCmd.AddCommand(objectGetCmd)
	objectCmd.AddCommand(objectReplaceCmd)
	objectCmd.AddCommand(objectDeleteCmd)
	objectCmd.AddCommand(objectSyncCmd)

	objectCmd.PersistentFlags().StringVarP(&objectBucket, "bucket", "b", "", "bucket name")
	objectCmd.MarkPersistentFlagRequired("bucket")

	objectListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Size > mb(1)'")
	objectListCmd.Flags().IntVar(&pageFlag, "page", 0, "page number")
	objectListCmd.Flags().IntVar(&sizeFlag, "page-size", 0, "page size")

	objectGetCmd.Flags().StringVarP(&objectOutput, "output", "o", "", "write content to file instead of stdout")

	objectSyncCmd.Flags().StringVar(&syncPrefix, "prefix", "", "key prefix for uploaded objects")
	objectSyncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "list what would be uploaded without uploading")
	objectSyncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "concurrent uploads (default from config)")
}

func runObjectList(cmd *cobra.Command, args []string) error {
	page, err := storageClient.ListObjects(context.Background(), objectBucket, listOptions())
	if err != nil {
		return err
	}

	objects := page.Results
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return err
		}
		var kept []storage.Object
		for _, o := range objects {
			env := map[string]any{
				"Key":          o.Key,
				"Size":         int(o.Size),
				"LastModified": o.LastModified,
			}
			if f.Match(env) {
				kept = append(kept, o)
			}
		}
		objects = kept
	}

	if len(objects) == 0 {
		fmt.Println("No objects found.")
		return nil
	}

	fmt.Printf("%-50s %12s  %s\n", "KEY", "SIZE", "LAST MODIFIED")
	fmt.Println(strings.Repeat("-", 90))
	for _, o := range objects {
		fmt.Printf("%-50s %12d  %s\n", o.Key, o.Size, o.LastModified)
	}
	fmt.Printf("\n%d of %d objects\n", len(objects), page.Count)
	return nil
}

func runObjectUpload(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := storageClient.UploadObject(context.Background(), objectBucket, args[0], content); err != nil {
		return err
	}

	fmt.Printf("Uploaded %s (%d bytes)\n", args[0], len(content))
	return nil
}

func runObjectGet(cmd *cobra.Command, args []string) error {
	obj, err := storageClient.GetObject(context.Background(), objectBucket, args[0])
	if err != nil {
		return err
	}

	if objectOutput != "" {
		if err := os.WriteFile(objectOutput, obj.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", objectOutput, obj.Size)
		return nil
	}

	os.Stdout.Write(obj.Content)
	return nil
}

func runObjectReplace(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := storageClient.ReplaceObject(context.Background(), objectBucket, args[0], content); err != nil {
		return err
	}

	fmt.Printf("Replaced %s (%d bytes)\n", args[0], len(content))
	return nil
}

func runObjectDelete(cmd *cobra.Command, args []string) error {
	if err := storageClient.DeleteObject(context.Background(), objectBucket, args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runObjectSync(cmd *cobra.Command, args []string) error {
	items, err := collectUploadItems(args[0], syncPrefix)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("Nothing to upload.")
		return nil
	}

	if syncDryRun {
		for _, item := range items {
			fmt.Printf("would upload %s (%d bytes)\n", item.Key, len(item.Content))
		}
		return nil
	}

	workers := syncWorkers
	if workers <= 0 {
		workers = cfg.Upload.Concurrency
	}

	result, err := storageClient.UploadAll(context.Background(), objectBucket, items, workers)
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %d of %d objects\n", result.Uploaded, result.Requested)
	for key, uploadErr := range result.Failed {
		fmt.Printf("  failed: %s: %v\n", key, uploadErr)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d uploads failed", len(result.Failed))
	}
	return nil
}

// collectUploadItems walks a directory tree and reads every regular file
// into an upload item keyed by its slash-separated relative path.
func collectUploadItems(root, prefix string) ([]storage.UploadItem, error) {
	var items []storage.UploadItem

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = strings.TrimSuffix(prefix, "/") + "/" + key
		}

		items = append(items, storage.UploadItem{Key: key, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return items, nil
}
