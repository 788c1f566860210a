package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const imageServer = "https://images.example.org/iiif/3/"

func writeFiles(t *testing.T, root string, keys ...string) {
	t.Helper()
	for _, key := range keys {
		p := filepath.Join(root, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func itemIDs(t *testing.T, s ObjectStore, prefix string) []string {
	t.Helper()
	items, err := s.ListItems(context.Background(), prefix)
	if err != nil {
		t.Fatalf("ListItems(%q) error = %v", prefix, err)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestImageURLs_ItemFromKey(t *testing.T) {
	u := ImageURLs{ServerURL: imageServer}

	tests := []struct {
		name   string
		key    string
		prefix string
		wantID string
		wantOK bool
	}{
		{"nested image", "scans/Dir1/item1.jpg", "scans/", "Dir1/item1", true},
		{"no extension", "scans/item", "scans/", "item", true},
		{"empty prefix", "a/b.tif", "", "a/b", true},
		{"folder marker", "scans/Dir1/", "scans/", "", false},
		{"thumbnail", "scans/.thumb/item1.jpg", "scans/", "", false},
		{"outside prefix", "other/item1.jpg", "scans/", "", false},
		{"prefix only", "scans/", "scans/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := u.itemFromKey(tt.key, tt.prefix)
			if ok != tt.wantOK {
				t.Fatalf("itemFromKey(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if item.ID != tt.wantID {
				t.Errorf("itemFromKey(%q) ID = %q, want %q", tt.key, item.ID, tt.wantID)
			}
		})
	}

	item, _ := u.itemFromKey("scans/Dir 1/item1.jpg", "scans/")
	if want := imageServer + "scans%2FDir+1%2Fitem1.jpg/full/max/0/default.jpg"; item.DisplayURL != want {
		t.Errorf("DisplayURL = %q, want %q", item.DisplayURL, want)
	}
	if want := imageServer + "scans%2FDir+1%2Fitem1.jpg/full/!75,100/0/default.jpg"; item.ThumbnailURL != want {
		t.Errorf("ThumbnailURL = %q, want %q", item.ThumbnailURL, want)
	}
}

func TestDirStore_ListItems(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"scans/Dir2/item4.jpg",
		"scans/Dir1/Dir1-1/item1.jpg",
		"scans/Dir1/item2.jpg",
		"scans/Dir2/Dir2-1/item3.jpg",
		"scans/.thumb/item1.jpg",
		"scans/Dir1/.DS_Store",
		"scansextra/x.jpg",
		"other/y.jpg",
	)
	store, err := NewDirStore(root, imageServer)
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"scans/", []string{"Dir1/Dir1-1/item1", "Dir1/item2", "Dir2/Dir2-1/item3", "Dir2/item4"}},
		{"scans/Dir2/", []string{"Dir2-1/item3", "item4"}},
		{"scans", []string{"/Dir1/Dir1-1/item1", "/Dir1/item2", "/Dir2/Dir2-1/item3", "/Dir2/item4", "extra/x"}},
		{"missing/", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := itemIDs(t, store, tt.prefix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListItems(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestDirStore_UploadAndMetadata(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFiles(t, root, "scans/item1.jpg")
	store, err := NewDirStore(root, imageServer)
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	if _, err := store.GetMetadata(ctx, "/scans_webdata_abcde"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetMetadata() before upload error = %v, want ErrNotFound", err)
	}
	if ok, err := store.Exists(ctx, "scans_webdata_abcde", IndexFile); err != nil || ok {
		t.Fatalf("Exists() before upload = %v, %v", ok, err)
	}

	files := SiteFiles{Index: "<html></html>", EAD: "<ead/>", Manifest: "{}"}
	meta := map[string]any{"title": "Test", "prefix": "scans/"}
	if err := store.Upload(ctx, "test", "/scans_webdata_abcde", files, meta); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	for name, want := range map[string]string{
		IndexFile:   files.Index,
		"test.xml":  files.EAD,
		"test.json": files.Manifest,
	} {
		data, err := os.ReadFile(filepath.Join(root, "scans_webdata_abcde", name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}

	info, err := os.Stat(filepath.Join(root, "scans_webdata_abcde", MetaFile))
	if err != nil {
		t.Fatalf("stat %s: %v", MetaFile, err)
	}
	if info.Mode().Perm()&0o044 != 0 {
		t.Errorf("%s mode = %v, want private", MetaFile, info.Mode().Perm())
	}

	got, err := store.GetMetadata(ctx, "scans_webdata_abcde")
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if !reflect.DeepEqual(got, meta) {
		t.Errorf("GetMetadata() = %v, want %v", got, meta)
	}

	if ok, err := store.Exists(ctx, "scans_webdata_abcde", IndexFile); err != nil || !ok {
		t.Errorf("Exists() after upload = %v, %v", ok, err)
	}

	// Sites are never listed as items
	if got := itemIDs(t, store, ""); !reflect.DeepEqual(got, []string{"scans/item1"}) {
		t.Errorf("ListItems() = %v, want only the image", got)
	}
}

func TestDirStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewDirStore(t.TempDir(), imageServer)
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}
	if err := store.Upload(context.Background(), "x", "../outside", SiteFiles{}, nil); err == nil {
		t.Error("Upload() outside the root should fail")
	}
	if _, err := store.GetMetadata(context.Background(), "a/../../b"); err == nil {
		t.Error("GetMetadata() outside the root should fail")
	}
}

func TestDirStore_ListItemsCanceled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "scans/item1.jpg")
	store, err := NewDirStore(root, imageServer)
	if err != nil {
		t.Fatalf("NewDirStore() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListItems(ctx, "scans/"); !errors.Is(err, context.Canceled) {
		t.Errorf("ListItems() error = %v, want context.Canceled", err)
	}
}

func TestNewS3Store_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     S3Config
		wantErr bool
	}{
		{"missing endpoint", S3Config{Bucket: "b"}, true},
		{"missing bucket", S3Config{Endpoint: "localhost:9000"}, true},
		{"valid", S3Config{Endpoint: "localhost:9000", Bucket: "b", AccessKey: "k", SecretKey: "s"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewS3Store(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewS3Store() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && store.bucket != "b" {
				t.Errorf("bucket = %q", store.bucket)
			}
		})
	}
}
