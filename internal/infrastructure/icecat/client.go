// Package icecat adapta la interfaz XML de Icecat al puerto ProductDataProvider:
// consulta la ficha de un producto por su EAN/UPC y la aplana al registro plano
// por dimensión que consume el resolver de catálogos.
package icecat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/application/enrichment"
	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/pkg/config"
	"github.com/lapstock/lapstock-api/pkg/logger"
)

var _ enrichment.ProductDataProvider = (*Client)(nil)

// Client cliente del servidor XML de Icecat con autenticación básica.
type Client struct {
	httpClient *http.Client
	cfg        config.IcecatConfig
	log        *logger.Logger
}

// NewClient construye el cliente.
func NewClient(cfg config.IcecatConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
		log:        log,
	}
}

// FetchByGTIN consulta la ficha del GTIN (EAN/UPC) y la normaliza.
// (nil, domain.ErrNotFound) si Icecat no tiene ficha publicada para el código.
func (c *Client) FetchByGTIN(ctx context.Context, gtin string) (*dto.ProductSpecs, error) {
	reqURL := fmt.Sprintf("%s?ean_upc=%s;lang=%s;output=productxml",
		c.cfg.BaseURL, url.QueryEscape(gtin), url.QueryEscape(c.cfg.Language))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("icecat: construir request: %w", err)
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("icecat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icecat: respuesta %d: %w", resp.StatusCode, domain.ErrProviderUnavailable)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("icecat: parsear XML: %w", err)
	}
	return c.parseProduct(doc, gtin)
}

func (c *Client) parseProduct(doc *etree.Document, gtin string) (*dto.ProductSpecs, error) {
	product := doc.FindElement("//Product")
	if product == nil {
		return nil, fmt.Errorf("icecat: respuesta sin elemento Product: %w", domain.ErrProviderUnavailable)
	}
	// Code="-1" es la convención de Icecat para "ficha no encontrada".
	if product.SelectAttrValue("Code", "") == "-1" {
		c.log.Debug().Str("gtin", gtin).Str("reason", product.SelectAttrValue("ErrorMessage", "")).
			Msg("icecat sin ficha para el GTIN")
		return nil, domain.ErrNotFound
	}

	specs := &dto.ProductSpecs{
		GTIN:      gtin,
		Title:     product.SelectAttrValue("Title", ""),
		ModelName: product.SelectAttrValue("Name", ""),
	}
	if supplier := product.FindElement("Supplier"); supplier != nil {
		specs.Brand = supplier.SelectAttrValue("Name", "")
	}

	for _, pf := range product.FindElements("ProductFeature") {
		name := ""
		if feat := pf.FindElement("Feature/Name"); feat != nil {
			name = feat.SelectAttrValue("Value", "")
		}
		value := pf.SelectAttrValue("Presentation_Value", "")
		if value == "" {
			value = pf.SelectAttrValue("Value", "")
		}
		if name == "" || value == "" {
			continue
		}
		applyFeature(specs, name, value)
	}
	return specs, nil
}

// applyFeature asigna una feature de Icecat al campo correspondiente del
// registro plano. Los nombres se comparan normalizados; se aceptan las
// variantes en inglés y en español de las features relevantes.
func applyFeature(specs *dto.ProductSpecs, name, value string) {
	switch normalizeFeature(name) {
	case "processor family", "familia de procesador":
		specs.ProcessorFamily = value
	case "processor generation", "generacion del procesador":
		specs.ProcessorGeneration = value
	case "processor model", "modelo del procesador":
		specs.ProcessorModel = value
	case "npu", "neural processor":
		specs.ProcessorHasNPU = parseBool(value)
	case "operating system installed", "sistema operativo instalado":
		specs.OSName = value
	case "display diagonal", "diagonal de la pantalla":
		specs.ScreenDiagonalInches = parseInches(value)
	case "display resolution", "resolucion de la pantalla":
		specs.ScreenResolution = value
	case "hd type", "tipo hd":
		specs.ScreenHDType = value
	case "display panel type", "tipo de panel":
		specs.ScreenPanelType = value
	case "display refresh rate", "frecuencia de actualizacion":
		specs.ScreenRefreshRate = int(parseNumber(value))
	case "touchscreen", "pantalla tactil":
		specs.ScreenTouchscreen = parseBool(value)
	case "on-board graphics adapter", "adaptador grafico incorporado":
		specs.HasDiscreteGPU = specs.HasDiscreteGPU || !parseBool(value)
	case "discrete graphics adapter model", "modelo de adaptador de graficos discretos":
		specs.DiscreteGPUModel = value
		specs.HasDiscreteGPU = true
	case "on-board graphics adapter model", "modelo de adaptador grafico incorporado":
		specs.OnboardGPUModel = value
	case "graphics adapter brand", "discrete graphics adapter brand", "marca de adaptador grafico":
		specs.GPUBrand = value
	case "discrete graphics adapter memory", "memoria del adaptador de graficos discretos":
		specs.GPUMemoryGB = int(parseNumber(value))
	case "total storage capacity", "capacidad total de almacenaje":
		specs.StorageCapacityGB = int(parseNumber(value))
	case "storage media", "unidad de almacenamiento":
		specs.StorageMediaType = value
	case "nvme":
		specs.StorageNVMe = parseBool(value)
	case "ssd form factor", "factor de forma de disco ssd":
		specs.StorageFormFactor = value
	case "internal memory", "memoria interna":
		specs.RamCapacityGB = int(parseNumber(value))
	case "internal memory type", "tipo de memoria interna":
		specs.RamType = value
	case "memory clock speed", "velocidad de memoria del reloj":
		specs.RamSpeedMHz = int(parseNumber(value))
	}
}

func normalizeFeature(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n")
	return replacer.Replace(name)
}

var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// parseNumber extrae el primer número de un valor presentado ("512 GB", "3200 MHz").
func parseNumber(value string) float64 {
	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0
	}
	return n
}

var inchesPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*"`)

// parseInches extrae la diagonal en pulgadas. Icecat la presenta en cm con las
// pulgadas entre paréntesis: `39.6 cm (15.6")`. Sin pulgadas explícitas se
// asume cm y se convierte.
func parseInches(value string) float64 {
	if m := inchesPattern.FindStringSubmatch(value); m != nil {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil {
			return n
		}
	}
	if cm := parseNumber(value); cm > 0 && strings.Contains(strings.ToLower(value), "cm") {
		return cm / 2.54
	}
	return parseNumber(value)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "si", "sí", "true", "1":
		return true
	}
	return false
}
