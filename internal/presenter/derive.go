package presenter

import "strings"

const (
	UnknownErrorText      = "Unknown error"
	IncompleteProfileCode = "incomplete_profile"
)

// user-facing texts the deriver and dispatcher emit
type Texts struct {
	PermissionError string

	// shown to non-employees whose profile blocks an action
	NoProfile   string
	ProfileLink string

	// shown to employees; %email% is replaced with the employer email
	ContactEmployer string
}

func DefaultTexts() Texts {
	return Texts{
		PermissionError: "You don't have permission to perform this action.",
		NoProfile:       "Your company profile is incomplete. Complete it to continue: ",
		ProfileLink:     "Here",
		ContactEmployer: " Please contact your employer %email%",
	}
}

// turns error payloads into display messages
type Deriver struct {
	dictionary Dictionary
	texts      Texts
}

func NewDeriver(dictionary Dictionary, texts Texts) *Deriver {
	if dictionary == nil {
		dictionary = Dictionary{}
	}

	return &Deriver{
		dictionary: dictionary,
		texts:      texts,
	}
}

func (d *Deriver) Texts() Texts {
	return d.texts
}

// derives the ordered display messages for payload. the result is never empty.
func (d *Deriver) Derive(payload ErrorPayload, dc DeriveContext) []DisplayMessage {
	messages := d.walk(nil, payload, dc)

	if len(messages) == 0 {
		return []DisplayMessage{{Text: UnknownErrorText}}
	}

	return messages
}

// nested payloads are flattened in place and see the same context as the top level
func (d *Deriver) walk(out []DisplayMessage, payload ErrorPayload, dc DeriveContext) []DisplayMessage {
	for _, field := range payload {
		switch field.Value.Kind {
		case ValueList:
			for _, item := range field.Value.Items {
				out = d.item(out, field.Key, item, dc)
			}

		case ValueObject:
			out = d.walk(out, field.Value.Object, dc)
		}
	}

	return out
}

func (d *Deriver) item(out []DisplayMessage, key string, item Item, dc DeriveContext) []DisplayMessage {
	switch item.Kind {
	case ItemSubError:
		text, ok := d.dictionary.Lookup(key, item.SubError.Code)
		if !ok {
			text = item.SubError.Message + " "
		}

		out = append(out, DisplayMessage{Text: text})
		out = d.expand(out, item.SubError, dc)

	case ItemAggregate:
		// aggregate entries are shown verbatim
		for _, sub := range item.All {
			out = append(out, DisplayMessage{Text: sub.Message + " "})
			out = d.expand(out, sub, dc)
		}

	case ItemNested:
		out = d.walk(out, item.Nested, dc)

	case ItemText:
		out = append(out, DisplayMessage{Text: item.Text + " "})
	}

	return out
}

// appends the follow-up message for error codes that need one
func (d *Deriver) expand(out []DisplayMessage, sub SubError, dc DeriveContext) []DisplayMessage {
	if sub.Code != IncompleteProfileCode {
		return out
	}

	if dc.User.IsEmployee() {
		return append(out, DisplayMessage{
			Text: strings.Replace(d.texts.ContactEmployer, "%email%", dc.EmployerEmail, 1),
		})
	}

	return append(out, DisplayMessage{
		Text:  d.texts.NoProfile,
		Link:  d.texts.ProfileLink,
		Route: cloneRoute(ProfileRoute),
		Type:  ToastAttention,
	})
}
