package downloader

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/terratensor/addresser/internal/config"
)

type Downloader struct {
	client     *http.Client
	cfg        *config.Config
	retryDelay time.Duration
	quiet      bool
}

func New(cfg *config.Config) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: cfg.DownloadTimeout,
		},
		cfg:        cfg,
		retryDelay: 5 * time.Second,
		quiet:      cfg.Quiet,
	}
}

// FetchPayload скачивает выгрузку иерархий по PAYLOAD_URL и возвращает путь к NDJSON файлу.
// Zip архив распаковывается, берется первый файл с расширением .ndjson, .jsonl или .json.
func (d *Downloader) FetchPayload(ctx context.Context) (string, error) {
	if d.cfg.PayloadURL == "" {
		return "", fmt.Errorf("PAYLOAD_URL not set")
	}

	u, err := url.Parse(d.cfg.PayloadURL)
	if err != nil {
		return "", fmt.Errorf("invalid PAYLOAD_URL: %w", err)
	}
	filename := path.Base(u.Path)
	if filename == "" || filename == "/" || filename == "." {
		return "", fmt.Errorf("PAYLOAD_URL has no file name: %s", d.cfg.PayloadURL)
	}

	localPath, err := d.DownloadFile(ctx, d.cfg.PayloadURL, filename)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(filepath.Ext(localPath), ".zip") {
		return localPath, nil
	}

	files, err := d.ExtractZip(localPath)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".ndjson", ".jsonl", ".json":
			return f, nil
		}
	}
	return "", fmt.Errorf("no payload file in %s", localPath)
}

// DownloadFile скачивает rawURL в DATA_DIR/filename с повторами, уже скачанный файл не загружается повторно
func (d *Downloader) DownloadFile(ctx context.Context, rawURL, filename string) (string, error) {
	localPath := filepath.Join(d.cfg.DataDir, filename)

	// Создаём директорию если не существует
	if err := os.MkdirAll(d.cfg.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	// Проверяем существует ли уже файл
	if _, err := os.Stat(localPath); err == nil {
		log.Printf("Using cached %s", localPath)
		return localPath, nil
	}

	attempts := max(d.cfg.MaxRetries, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			log.Printf("Retrying download of %s (%d/%d): %v", filename, attempt, attempts, lastErr)
			select {
			case <-time.After(d.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		if lastErr = d.download(ctx, rawURL, localPath, filename); lastErr == nil {
			return localPath, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("failed to download %s after %d attempts: %w", rawURL, attempts, lastErr)
}

func (d *Downloader) download(ctx context.Context, rawURL, localPath, filename string) error {
	// Делаем запрос
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	// до завершения загрузки файл лежит с суффиксом .part
	tmpPath := localPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	// Копируем с отслеживанием прогресса
	_, err = io.Copy(io.MultiWriter(out, d.progressBar(resp.ContentLength, fmt.Sprintf("Downloading %s", filename))), resp.Body)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	return os.Rename(tmpPath, localPath)
}

func (d *Downloader) progressBar(size int64, description string) *progressbar.ProgressBar {
	if d.quiet {
		return progressbar.DefaultBytesSilent(size, description)
	}
	return progressbar.NewOptions64(
		size,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)
}

// ExtractZip распаковывает zip архив и возвращает список распакованных файлов
func (d *Downloader) ExtractZip(zipPath string) ([]string, error) {
	// Открываем zip архив
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer reader.Close()

	var extractedFiles []string

	for _, zipFile := range reader.File {
		if zipFile.FileInfo().IsDir() {
			continue
		}

		// каталоги архива не воспроизводим, имя файла без пути
		destPath := filepath.Join(d.cfg.DataDir, filepath.Base(zipFile.Name))

		// Проверяем существует ли уже распакованный файл
		if _, err := os.Stat(destPath); err == nil {
			extractedFiles = append(extractedFiles, destPath)
			continue
		}

		if err := extractFile(zipFile, destPath); err != nil {
			return nil, err
		}

		extractedFiles = append(extractedFiles, destPath)
		log.Printf("Extracted: %s", destPath)
	}

	return extractedFiles, nil
}

func extractFile(zipFile *zip.File, destPath string) error {
	// Открываем файл в архиве
	rc, err := zipFile.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s in zip: %w", zipFile.Name, err)
	}
	defer rc.Close()

	// Создаем выходной файл
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", destPath, err)
	}

	// Копируем содержимое
	_, err = io.Copy(out, rc)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to extract file %s: %w", zipFile.Name, err)
	}
	return nil
}
