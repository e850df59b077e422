package model

import (
	"testing"
)

func TestNewFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		compression CompressionType
		tableName   string
	}{
		{
			name:        "Plain CSV file",
			path:        "data/users.csv",
			compression: CompressionNone,
			tableName:   "users",
		},
		{
			name:        "Gzip file",
			path:        "users.csv.gz",
			compression: CompressionGZ,
			tableName:   "users",
		},
		{
			name:        "Bzip2 file",
			path:        "users.tsv.bz2",
			compression: CompressionBZ2,
			tableName:   "users",
		},
		{
			name:        "XZ file with upper case extension",
			path:        "USERS.TXT.XZ",
			compression: CompressionXZ,
			tableName:   "USERS",
		},
		{
			name:        "Zstd file",
			path:        "/tmp/a.b.csv.zst",
			compression: CompressionZSTD,
			tableName:   "a.b",
		},
		{
			name:        "File without extension",
			path:        "data",
			compression: CompressionNone,
			tableName:   "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewFile(tt.path)
			if f.Path() != tt.path {
				t.Errorf("Path() = %s, want %s", f.Path(), tt.path)
			}
			if f.Compression() != tt.compression {
				t.Errorf("Compression() = %v, want %v", f.Compression(), tt.compression)
			}
			if f.IsCompressed() != (tt.compression != CompressionNone) {
				t.Errorf("IsCompressed() = %v", f.IsCompressed())
			}
			if f.TableName() != tt.tableName {
				t.Errorf("TableName() = %s, want %s", f.TableName(), tt.tableName)
			}
		})
	}
}

func TestCompressionType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c   CompressionType
		str string
		ext string
	}{
		{CompressionNone, "none", ""},
		{CompressionGZ, "gz", ".gz"},
		{CompressionBZ2, "bz2", ".bz2"},
		{CompressionXZ, "xz", ".xz"},
		{CompressionZSTD, "zstd", ".zst"},
	}

	for _, tt := range tests {
		if tt.c.String() != tt.str {
			t.Errorf("String() = %s, want %s", tt.c.String(), tt.str)
		}
		if tt.c.Extension() != tt.ext {
			t.Errorf("Extension() = %s, want %s", tt.c.Extension(), tt.ext)
		}
	}
}
