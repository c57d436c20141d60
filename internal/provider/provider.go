package provider

// ID identifies a supported AI provider family.
type ID string

const (
	Google   ID = "google"
	OpenAI   ID = "openai"
	DeepSeek ID = "deepseek"
	Qwen     ID = "qwen"
	Grok     ID = "grok"
	Doubao   ID = "doubao"
)

// Descriptor is the static catalog entry for one provider: display name,
// default endpoint for the OpenAI-compatible path (empty when the provider is
// reached through its native API), the selectable models in display order,
// and whether the provider honors the response_format JSON hint.
type Descriptor struct {
	ID               ID       `json:"id"`
	Name             string   `json:"name"`
	Endpoint         string   `json:"endpoint,omitempty"`
	Models           []string `json:"models"`
	SupportsJSONMode bool     `json:"supportsJsonMode"`
}

// DefaultModel returns the model selected when the user has not picked one.
func (d Descriptor) DefaultModel() string {
	if len(d.Models) == 0 {
		return ""
	}
	return d.Models[0]
}

// Native reports whether the provider is called through its own API rather
// than the generic chat-completions convention.
func (d Descriptor) Native() bool {
	return d.Endpoint == ""
}

var descriptors = []Descriptor{
	{
		ID:     Google,
		Name:   "Google Gemini",
		Models: []string{"gemini-2.5-flash", "gemini-3-pro-preview"},
	},
	{
		ID:               OpenAI,
		Name:             "OpenAI (ChatGPT)",
		Endpoint:         "https://api.openai.com/v1",
		Models:           []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"},
		SupportsJSONMode: true,
	},
	{
		ID:               DeepSeek,
		Name:             "DeepSeek (深度求索)",
		Endpoint:         "https://api.deepseek.com",
		Models:           []string{"deepseek-chat", "deepseek-reasoner"},
		SupportsJSONMode: true,
	},
	{
		ID:       Qwen,
		Name:     "Alibaba Qwen (通义千问)",
		Endpoint: "https://dashscope.aliyuncs.com/compatible-mode/v1",
		Models:   []string{"qwen-plus", "qwen-turbo", "qwen-max"},
	},
	{
		ID:       Grok,
		Name:     "xAI Grok",
		Endpoint: "https://api.x.ai/v1",
		Models:   []string{"grok-2-latest"},
	},
	{
		// Model names vary by deployment; users usually adjust them.
		ID:       Doubao,
		Name:     "Doubao (豆包/火山引擎)",
		Endpoint: "https://ark.cn-beijing.volces.com/api/v3",
		Models:   []string{"doubao-pro-32k"},
	},
}

var byID = func() map[ID]Descriptor {
	m := make(map[ID]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.ID] = d
	}
	return m
}()

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// All returns every descriptor in stable display order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Default is the provider used when nothing has been configured.
func Default() Descriptor {
	return byID[Google]
}
