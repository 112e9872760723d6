package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVの列。表計算ソフトでの閲覧が前提。
var header = []string{"No", "주문ID", "이메일", "주소", "우편번호", "상품명", "수량", "단가", "소계", "주문시간"}

// ExcelでUTF-8を正しく開くためのBOM
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const timeLayout = "2006-01-02 15:04:05"

// CSVWriter は outputs/<年>/<月>/order_report_<時刻>.csv を書き出す。
type CSVWriter struct {
	dir string
}

func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

func (w *CSVWriter) Write(rows []Row, now time.Time) (string, error) {
	dir := filepath.Join(w.dir, strconv.Itoa(now.Year()), fmt.Sprintf("%02d", int(now.Month())))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("order_report_%s.csv", now.Format("20060102_1504")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.No),
			strconv.FormatInt(r.OrderID, 10),
			r.Email,
			r.ShippingAddress,
			r.ShippingCode,
			r.ProductName,
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatInt(r.UnitPrice, 10),
			strconv.FormatInt(r.SubTotal, 10),
			r.OrderTime.Format(timeLayout),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("write row %d: %w", r.No, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	//ステータス昇格の前にディスクまで書き切る
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("sync report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}

	return path, nil
}
