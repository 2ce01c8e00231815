package application

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	apperrors "github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
	"github.com/Daksh-create349/stock-Master/pkg/tracing"
)

// ErrModelNotConfigured is returned by a LanguageModel without credentials
var ErrModelNotConfigured = errors.New("language model not configured")

// Intents the model may return
const (
	IntentCreateProduct   = "CREATE_PRODUCT"
	IntentCreateOperation = "CREATE_OPERATION"
	IntentCheckStock      = "CHECK_STOCK"
	IntentUnknown         = "UNKNOWN"
)

// Fixed replies used when the model cannot be reached or understood
const (
	SummaryMissingKey   = "API Key is missing. Please configure the environment variable."
	SummaryUnavailable  = "Unable to generate insights at this time. Please try again later."
	InterpretMissingKey = "AI Configuration missing."
	InterpretFailed     = "I'm having trouble understanding the neural link."
	ReplyNoMatch        = "I understood the intent but was unable to execute the parameter match."
	ReplySystemError    = "System error processing voice command."
)

const (
	promptProductLimit = 50
	promptPartnerLimit = 20
	autoProductMinimum = 10
)

//go:embed command_schema.json
var commandSchemaJSON []byte

func compileCommandSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(commandSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse command schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("command.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add command schema: %w", err)
	}
	return c.Compile("command.json")
}

// commandReply is the wire shape of the model's answer. Quantity is a
// float because the model reports JSON numbers.
type commandReply struct {
	Intent string `json:"intent"`
	Data   *struct {
		ProductName    string   `json:"productName"`
		Quantity       *float64 `json:"quantity"`
		PartnerName    string   `json:"partnerName"`
		OperationType  string   `json:"operationType"`
		TargetLocation string   `json:"targetLocation"`
	} `json:"data"`
	Reply string `json:"reply"`
}

// AssistantService is the natural language front end. The model's answer
// is untrusted input and is checked against a JSON schema before use.
type AssistantService struct {
	model      LanguageModel
	schema     *jsonschema.Schema
	catalog    *CatalogService
	products   domain.ProductRepository
	operations domain.OperationRepository
	contacts   domain.ContactRepository
	references domain.ReferenceSequence
	session    SessionSource
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	logger     *logging.Logger
}

// NewAssistantService creates a new AssistantService. model may be nil, in
// which case every call answers with the missing configuration reply.
func NewAssistantService(
	model LanguageModel,
	catalog *CatalogService,
	products domain.ProductRepository,
	operations domain.OperationRepository,
	contacts domain.ContactRepository,
	references domain.ReferenceSequence,
	session SessionSource,
	m *metrics.Metrics,
	logger *logging.Logger,
) (*AssistantService, error) {
	schema, err := compileCommandSchema()
	if err != nil {
		return nil, err
	}
	return &AssistantService{
		model:      model,
		schema:     schema,
		catalog:    catalog,
		products:   products,
		operations: operations,
		contacts:   contacts,
		references: references,
		session:    session,
		metrics:    m,
		tracer:     otel.Tracer("stockmaster/assistant"),
		logger:     logger.WithComponent("assistant"),
	}, nil
}

// ExecutiveSummary asks the model for a summary and three recommendations.
// Failures degrade to a fixed reply and are never returned as errors.
func (s *AssistantService) ExecutiveSummary(ctx context.Context) (*SummaryDTO, error) {
	if s.model == nil {
		return &SummaryDTO{Summary: SummaryMissingKey}, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	operations, err := s.operations.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := tracing.Traced(ctx, s.tracer, "assistant.summary", func(ctx context.Context) (string, error) {
		return s.model.Generate(ctx, summaryPrompt(products, operations))
	}, attribute.Int("products.count", len(products)))
	s.metrics.RecordAIRequest("summary", err == nil, time.Since(start))

	switch {
	case errors.Is(err, ErrModelNotConfigured):
		return &SummaryDTO{Summary: SummaryMissingKey}, nil
	case err != nil || strings.TrimSpace(text) == "":
		s.logger.WithContext(ctx).WithError(err).Warn("Summary generation failed")
		return &SummaryDTO{Summary: SummaryUnavailable}, nil
	}
	return &SummaryDTO{Summary: text}, nil
}

func summaryPrompt(products []*domain.Product, operations []*domain.Operation) string {
	var low []string
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, fmt.Sprintf("%s (Qty: %d, Min: %d)", p.Name, p.Stock, p.MinStockRule))
		}
	}
	pending := 0
	for _, op := range operations {
		if op.IsPending() {
			pending++
		}
	}

	var b strings.Builder
	b.WriteString("You are an expert Inventory Manager AI for 'StockMaster'.\n")
	b.WriteString("Analyze the following inventory data and provide a concise executive summary and 3 actionable recommendations.\n\n")
	b.WriteString("Data:\n")
	fmt.Fprintf(&b, "- Total Products: %d\n", len(products))
	fmt.Fprintf(&b, "- Low Stock Items: %s\n", strings.Join(low, ", "))
	fmt.Fprintf(&b, "- Recent Operations Pending: %d\n\n", pending)
	b.WriteString("Keep the tone professional and efficient.\n")
	return b.String()
}

// Interpret classifies a command and extracts its entities
func (s *AssistantService) Interpret(ctx context.Context, command string) (*CommandInterpretationDTO, error) {
	unknown := func(reply string) *CommandInterpretationDTO {
		return &CommandInterpretationDTO{Intent: IntentUnknown, Reply: reply}
	}
	if s.model == nil {
		return unknown(InterpretMissingKey), nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	productNames := make([]string, 0, min(len(products), promptProductLimit))
	for i := 0; i < len(products) && i < promptProductLimit; i++ {
		productNames = append(productNames, products[i].Name)
	}
	partnerNames := make([]string, 0, min(len(contacts), promptPartnerLimit))
	for i := 0; i < len(contacts) && i < promptPartnerLimit; i++ {
		partnerNames = append(partnerNames, contacts[i].Name)
	}

	start := time.Now()
	raw, err := tracing.Traced(ctx, s.tracer, "assistant.interpret", func(ctx context.Context) ([]byte, error) {
		return s.model.GenerateCommand(ctx, commandPrompt(command, productNames, partnerNames))
	})
	if errors.Is(err, ErrModelNotConfigured) {
		s.metrics.RecordAIRequest("interpret", false, time.Since(start))
		return unknown(InterpretMissingKey), nil
	}
	if err == nil {
		var parsed *CommandInterpretationDTO
		parsed, err = s.parseReply(raw)
		if err == nil {
			s.metrics.RecordAIRequest("interpret", true, time.Since(start))
			return parsed, nil
		}
	}

	s.metrics.RecordAIRequest("interpret", false, time.Since(start))
	s.logger.WithContext(ctx).WithError(err).Warn("Command interpretation failed")
	return unknown(InterpretFailed), nil
}

func commandPrompt(command string, productNames, partnerNames []string) string {
	var b strings.Builder
	b.WriteString("You are the Voice Assistant for an Inventory System.\n")
	fmt.Fprintf(&b, "User Command: %q\n\n", command)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Existing Products: %s...\n", strings.Join(productNames, ", "))
	fmt.Fprintf(&b, "- Existing Partners: %s...\n\n", strings.Join(partnerNames, ", "))
	b.WriteString("Task: classify the intent and extract entities.\n\n")
	b.WriteString("Intents:\n")
	b.WriteString("1. CREATE_PRODUCT: User wants to define a new item.\n")
	b.WriteString("2. CREATE_OPERATION: User wants to move stock (Buy/Receive, Sell/Deliver, Move/Transfer).\n")
	b.WriteString("3. CHECK_STOCK: User asks about quantity or location.\n")
	b.WriteString("4. UNKNOWN: Gibberish or unrelated.\n\n")
	b.WriteString("Return JSON with: intent; data {productName (fuzzy matched if possible), quantity, ")
	b.WriteString("partnerName (fuzzy matched), operationType 'IN' (Receipt) | 'OUT' (Delivery) | 'INT' (Internal), targetLocation}; ")
	b.WriteString("reply (a short, robotic, cool response confirming what you are doing).\n")
	return b.String()
}

// parseReply validates raw against the command schema and decodes it
func (s *AssistantService) parseReply(raw []byte) (*CommandInterpretationDTO, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("empty model reply")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("model reply is not JSON: %w", err)
	}
	if err := s.schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("model reply does not match schema: %w", err)
	}

	var reply commandReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode model reply: %w", err)
	}

	out := &CommandInterpretationDTO{Intent: reply.Intent, Reply: reply.Reply}
	if reply.Data != nil {
		out.Data = &CommandDataDTO{
			ProductName:    strings.TrimSpace(reply.Data.ProductName),
			PartnerName:    strings.TrimSpace(reply.Data.PartnerName),
			OperationType:  reply.Data.OperationType,
			TargetLocation: strings.TrimSpace(reply.Data.TargetLocation),
		}
		if reply.Data.Quantity != nil {
			q := int(*reply.Data.Quantity)
			out.Data.Quantity = &q
		}
	}
	return out, nil
}

// ExecuteCommand interprets command and acts on it
func (s *AssistantService) ExecuteCommand(ctx context.Context, command string) (*AssistantReplyDTO, error) {
	if strings.TrimSpace(command) == "" {
		return nil, apperrors.ErrValidation("command is required")
	}

	interp, err := s.Interpret(ctx, command)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Assistant failed before interpretation")
		return &AssistantReplyDTO{Intent: IntentUnknown, Reply: ReplySystemError}, nil
	}

	reply, err := s.execute(ctx, interp)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Assistant command failed", "intent", interp.Intent)
		return &AssistantReplyDTO{Intent: interp.Intent, Reply: ReplySystemError}, nil
	}
	return reply, nil
}

func (s *AssistantService) execute(ctx context.Context, interp *CommandInterpretationDTO) (*AssistantReplyDTO, error) {
	out := &AssistantReplyDTO{Intent: interp.Intent}
	data := interp.Data
	if data == nil {
		data = &CommandDataDTO{}
	}

	switch {
	case interp.Intent == IntentUnknown:
		out.Reply = interp.Reply
		return out, nil

	case interp.Intent == IntentCheckStock && data.ProductName != "":
		p, err := s.findProduct(ctx, data.ProductName)
		if err != nil {
			return nil, err
		}
		if p == nil {
			out.Reply = fmt.Sprintf("I couldn't find a product named %s.", data.ProductName)
			return out, nil
		}
		out.Product = ToProductDTO(p)
		out.Reply = fmt.Sprintf("We have %d units of %s in %s.", p.Stock, p.Name, p.Location)
		return out, nil

	case interp.Intent == IntentCreateProduct && data.ProductName != "":
		stock := 0
		if data.Quantity != nil {
			stock = *data.Quantity
		}
		product, err := s.catalog.CreateProduct(ctx, CreateProductCommand{
			Name:         data.ProductName,
			SKU:          strings.Replace(s.references.Next("AUTO"), "/", "-", 1),
			Barcode:      fmt.Sprintf("%d", 10000000+rand.IntN(90000000)),
			Category:     DefaultCategory,
			UOM:          DefaultUOM,
			Stock:        stock,
			Location:     s.session.DefaultWarehouse(),
			MinStockRule: autoProductMinimum,
		})
		if err != nil {
			return nil, err
		}
		out.Product = product
		out.Reply = orDefault(interp.Reply, "Created new product: "+data.ProductName)
		return out, nil

	case interp.Intent == IntentCreateOperation && data.ProductName != "":
		p, err := s.findProduct(ctx, data.ProductName)
		if err != nil {
			return nil, err
		}
		if p == nil {
			out.Reply = "Could not identify product: " + data.ProductName
			return out, nil
		}
		cmd, err := s.operationFor(ctx, data, p)
		if err != nil {
			return nil, err
		}
		op, err := s.catalog.CreateOperation(ctx, cmd)
		if err != nil {
			return nil, err
		}
		out.Operation = op
		out.Reply = orDefault(interp.Reply, fmt.Sprintf("%s created (%s).", op.Type, op.Reference))
		return out, nil
	}

	out.Reply = ReplyNoMatch
	return out, nil
}

// operationFor maps the extracted entities to a Draft operation for p
func (s *AssistantService) operationFor(ctx context.Context, data *CommandDataDTO, p *domain.Product) (CreateOperationCommand, error) {
	qty := 1
	if data.Quantity != nil && *data.Quantity > 0 {
		qty = *data.Quantity
	}
	wh := s.session.DefaultWarehouse()

	cmd := CreateOperationCommand{
		Items:           []domain.LineItem{{ProductID: p.ID, Quantity: qty}},
		ReferencePrefix: PrefixAssistant + "/OUT",
	}
	switch data.OperationType {
	case "IN":
		cmd.Type = domain.OperationReceipt
		cmd.SourceLocation = domain.LocationVendor
		cmd.DestLocation = wh
		cmd.ReferencePrefix = PrefixAssistant + "/IN"
	case "OUT":
		cmd.Type = domain.OperationDelivery
		cmd.SourceLocation = wh
		cmd.DestLocation = domain.LocationCustomer
	default:
		cmd.Type = domain.OperationInternal
		cmd.SourceLocation = wh
		cmd.DestLocation = orDefault(data.TargetLocation, wh)
	}

	if data.PartnerName != "" {
		contacts, err := s.contacts.FindAll(ctx)
		if err != nil {
			return cmd, err
		}
		needle := strings.ToLower(data.PartnerName)
		for _, c := range contacts {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				cmd.PartnerID = c.ID
				break
			}
		}
	}
	return cmd, nil
}

// findProduct returns the first product whose name contains name, ignoring case
func (s *AssistantService) findProduct(ctx context.Context, name string) (*domain.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p, nil
		}
	}
	return nil, nil
}
