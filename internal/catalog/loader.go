package catalog

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Load reads a YAML catalog file and returns Catalog with raw bytes
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Catalog, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, data, fmt.Errorf("catalog %s: %w", path, err)
	}

	return cat, data, nil
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, []byte, error) {
	cat, err := Parse(defaultCatalogYAML)
	if err != nil {
		return nil, nil, fmt.Errorf("default catalog: %w", err)
	}
	return cat, defaultCatalogYAML, nil
}

// LoadOrDefault loads path, or the embedded catalog when path is empty
func LoadOrDefault(path string) (*Catalog, []byte, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&cat); err != nil {
		return nil, err
	}

	if err := Validate(&cat); err != nil {
		return nil, err
	}

	cat.buildIndex()
	return &cat, nil
}

// Hash generates SHA256 hash from Catalog (canonical JSON)
// 동일 카탈로그 → 동일 해시 (결과 재현성 추적용)
func Hash(cat *Catalog) (string, error) {
	jsonBytes, err := json.Marshal(cat)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
