// Package generators writes synthetic campaign dispatch CSV files.
//
// Every row is a pure function of its zero-based index, so two files generated
// with the same row count are byte-identical.
package generators

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	derrors "github.com/disparo/disparo/pkg/errors"
)

// Columns is the fixed header, in file order.
var Columns = []string{
	"Safra", "Data_Solicitacao", "Data_Disparo", "Solicitante", "Campanha",
	"Template_Fraseologia", "Link", "Canal", "Segmento", "Produto", "Oferta",
	"CPFCNPJ", "Telefone", "Email", "Contrato", "Dias_Atraso", "Dt_Venc",
	"Nome_Cliente", "Variavel",
}

// NumColumns is the number of fields in every line.
const NumColumns = 19

// Field positions within a record.
const (
	ColSafra = iota
	ColDataSolicitacao
	ColDataDisparo
	ColSolicitante
	ColCampanha
	ColTemplate
	ColLink
	ColCanal
	ColSegmento
	ColProduto
	ColOferta
	ColCPFCNPJ
	ColTelefone
	ColEmail
	ColContrato
	ColDiasAtraso
	ColDtVenc
	ColNomeCliente
	ColVariavel
)

const (
	campaignCycle = 100
	overdueCycle  = 30
	variableCycle = 10

	filePrefix = "disparo-"
	fileSuffix = ".csv"
)

// Record returns the synthetic record for row index i.
func Record(i int) []string {
	row := make([]string, NumColumns)
	fillRecord(row, i)
	return row
}

func fillRecord(row []string, i int) {
	row[ColSafra] = "2024"
	row[ColDataSolicitacao] = "2024-01-01"
	row[ColDataDisparo] = "2024-01-02"
	row[ColSolicitante] = "RENATA"
	row[ColCampanha] = "CAMPANHA_" + strconv.Itoa(i%campaignCycle)
	row[ColTemplate] = "TEMPLATE_TESTE"
	row[ColLink] = "https://exemplo.com"
	row[ColCanal] = Channel(i)
	row[ColSegmento] = "PF"
	row[ColProduto] = "CARTAO"
	row[ColOferta] = "OFERTA_ESPECIAL"
	row[ColCPFCNPJ] = fmt.Sprintf("123456789%02d", i)
	row[ColTelefone] = fmt.Sprintf("11987654%03d", i)
	row[ColEmail] = "teste" + strconv.Itoa(i) + "@email.com"
	row[ColContrato] = "CONTRATO_" + strconv.Itoa(i)
	row[ColDiasAtraso] = strconv.Itoa(i % overdueCycle)
	row[ColDtVenc] = "2024-12-31"
	row[ColNomeCliente] = "CLIENTE_" + strconv.Itoa(i)
	row[ColVariavel] = "VAR_" + strconv.Itoa(i%variableCycle)
}

// Channel returns the dispatch channel for row index i.
func Channel(i int) string {
	if i%2 == 0 {
		return "EMAIL"
	}
	return "SMS"
}

// CampaignGenerator writes campaign CSV data.
type CampaignGenerator struct {
	// Output settings
	Delimiter rune
	UseCRLF   bool

	// OnProgress, when set, is called with the number of rows written so far
	// every ProgressEvery rows and once when all rows are written.
	OnProgress    func(rows int)
	ProgressEvery int
}

// NewCampaignGenerator creates a generator with default settings.
func NewCampaignGenerator() *CampaignGenerator {
	return &CampaignGenerator{
		Delimiter:     ';',
		UseCRLF:       true,
		ProgressEvery: 1000,
	}
}

// Generate writes the header followed by n rows to w.
func (g *CampaignGenerator) Generate(w io.Writer, n int) error {
	if n < 0 {
		return derrors.InvalidRowCount(n)
	}

	cw := csv.NewWriter(w)
	cw.Comma = g.Delimiter
	cw.UseCRLF = g.UseCRLF

	if err := cw.Write(Columns); err != nil {
		return err
	}

	row := make([]string, NumColumns)
	for i := 0; i < n; i++ {
		fillRecord(row, i)
		if err := cw.Write(row); err != nil {
			return err
		}
		if g.OnProgress != nil && g.ProgressEvery > 0 && (i+1)%g.ProgressEvery == 0 {
			g.OnProgress(i + 1)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if g.OnProgress != nil && (g.ProgressEvery <= 0 || n%g.ProgressEvery != 0 || n == 0) {
		g.OnProgress(n)
	}
	return nil
}

// CreateTemp writes n rows to a new uniquely named file in dir and returns
// its path. An empty dir means the OS temp directory. The file is removed
// again if writing fails.
func (g *CampaignGenerator) CreateTemp(dir string, n int) (string, error) {
	if n < 0 {
		return "", derrors.InvalidRowCount(n)
	}
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, filePrefix+uuid.NewString()+fileSuffix)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", derrors.FileCreate(path, err)
	}

	if err := g.writeFile(f, n); err != nil {
		f.Close()
		os.Remove(path)
		return "", derrors.FileWrite(path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", derrors.FileWrite(path, err)
	}

	return path, nil
}

// WriteFile writes n rows to path, truncating any existing file.
func (g *CampaignGenerator) WriteFile(path string, n int) error {
	if n < 0 {
		return derrors.InvalidRowCount(n)
	}

	f, err := os.Create(path)
	if err != nil {
		return derrors.FileCreate(path, err)
	}
	if err := g.writeFile(f, n); err != nil {
		f.Close()
		return derrors.FileWrite(path, err)
	}
	if err := f.Close(); err != nil {
		return derrors.FileWrite(path, err)
	}
	return nil
}

func (g *CampaignGenerator) writeFile(f *os.File, n int) error {
	bw := bufio.NewWriterSize(f, 64*1024)
	if err := g.Generate(bw, n); err != nil {
		return err
	}
	return bw.Flush()
}
