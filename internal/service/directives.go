// internal/service/directives.go
package service

import (
	"encoding/hex"
	"fmt"
	"strings"

	"escp-service/internal/model"
	"escp-service/pkg/escp"
	"escp-service/pkg/escp/charset"
)

// BuildRequest drives a builder through the request's directives. The
// first failing directive stops the build; its index and op are added to
// the returned error, which still matches the escp sentinels.
func BuildRequest(req *model.PrintRequest, defaultCodePage string) (*escp.Builder, error) {
	b, err := escp.SelectVariant(req.Pins)
	if err != nil {
		return nil, err
	}

	name := req.CodePage
	if name == "" {
		name = defaultCodePage
	}
	cp, err := charset.Lookup(name)
	if err != nil {
		return nil, err
	}

	for i := range req.Directives {
		d := &req.Directives[i]
		if err := applyDirective(b, d, cp); err != nil {
			return nil, fmt.Errorf("directive %d (%s): %w", i, d.Op, err)
		}
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("directive %d (%s): %w", i, d.Op, err)
		}
	}

	return b, nil
}

// applyDirective issues the builder call named by d.Op. Errors returned
// here are request shape errors; encoding failures land in b.Err().
func applyDirective(b *escp.Builder, d *model.Directive, cp *charset.CodePage) error {
	switch strings.ToLower(d.Op) {
	case model.OpInit:
		b.Init()
	case model.OpText:
		b.Text(d.Text, cp)
	case model.OpRaw:
		p, err := hex.DecodeString(strings.ReplaceAll(d.Raw, " ", ""))
		if err != nil {
			return fmt.Errorf("%w: raw is not hex: %v", escp.ErrInvalidParameter, err)
		}
		b.Raw(p)
	case model.OpCRLF:
		count := 1
		if d.Count != nil {
			count = *d.Count
		}
		b.CarriageReturnLineFeed(count)
	case model.OpBold:
		b.Bold(d.IsOn())
	case model.OpItalic:
		b.Italic(d.IsOn())
	case model.OpDoubleStrike:
		b.DoubleStrike(d.IsOn())
	case model.OpCondensed:
		b.Condensed(d.IsOn())
	case model.OpProportional:
		b.Proportional(d.IsOn())
	case model.OpUnderline:
		b.Underline(d.IsOn())
	case model.OpDraft:
		b.Draft(d.IsOn())
	case model.OpDoubleWidth:
		b.DoubleCharacterWidth(d.IsOn())
	case model.OpDoubleHeight:
		b.DoubleCharacterHeight(d.IsOn())
	case model.OpCharacterWidth:
		v, err := required(d.Value, "value")
		if err != nil {
			return err
		}
		b.CharacterWidth(v)
	case model.OpExtraSpace:
		v, err := required(d.Value, "value")
		if err != nil {
			return err
		}
		b.ExtraSpace(v)
	case model.OpTypeface:
		face, err := escp.ParseTypeface(d.Face)
		if err != nil {
			return err
		}
		b.Typeface(face)
	case model.OpMargin:
		side, err := escp.ParseMarginSide(d.Side)
		if err != nil {
			return err
		}
		v, err := required(d.Value, "value")
		if err != nil {
			return err
		}
		b.Margin(side, v)
	case model.OpPageLength:
		unit, err := escp.ParsePageLengthUnit(d.Unit)
		if err != nil {
			return err
		}
		v, err := required(d.Value, "value")
		if err != nil {
			return err
		}
		b.PageLength(v, unit)
	case model.OpJustify:
		mode, err := escp.ParseJustification(d.Mode)
		if err != nil {
			return err
		}
		b.Justify(mode)
	case model.OpLineSpacing:
		b.LineSpacing(d.Numerator, d.Denominator)
	case model.OpInternationalCharset:
		set, err := charset.ParseSet(d.Charset)
		if err != nil {
			return fmt.Errorf("%w: %v", escp.ErrInvalidParameter, err)
		}
		b.InternationalCharset(set)
	case model.OpFormFeed:
		b.FormFeed()
	default:
		return fmt.Errorf("%w: unknown op %q", escp.ErrUnsupportedDirective, d.Op)
	}
	return nil
}

func required(v *int, field string) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s is required", escp.ErrInvalidParameter, field)
	}
	return *v, nil
}
