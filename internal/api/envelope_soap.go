package api

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"tradegate/internal/fault"
	"tradegate/internal/platform/logger"
)

const soapNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// xmlParams adapts a decoder positioned on an operation element to the
// dispatcher's parameter source. DecodeElement consumes the element's
// children into the input struct by xml tag.
type xmlParams struct {
	dec   *xml.Decoder
	start xml.StartElement
}

func (p xmlParams) Decode(v any) error {
	return p.dec.DecodeElement(v, &p.start)
}

// soapFaultDetail nests the structured fault under the SOAP detail element
// so XML callers see the same category, code, and field information JSON
// callers do.
type soapFaultDetail struct {
	Fault *fault.Fault `xml:"fault"`
}

// soapFault is the SOAP 1.1 fault body.
type soapFault struct {
	XMLName xml.Name        `xml:"soap:Fault"`
	Code    string          `xml:"faultcode"`
	Reason  string          `xml:"faultstring"`
	Detail  soapFaultDetail `xml:"detail"`
}

// HandleSOAP serves the XML envelope at POST /soap. The element inside Body
// names the operation and its children carry the parameters. Credentials
// ride in the Authorization header, same as the JSON envelope.
func (h *Handler) HandleSOAP(w http.ResponseWriter, r *http.Request) {
	dec := xml.NewDecoder(r.Body)
	start, err := soapOperation(dec)
	if err != nil {
		flt := fault.ValidationError(fmt.Sprintf("Invalid request envelope: %v", err), "")
		h.writeSOAPFault(w, r, flt)
		return
	}

	result, flt := h.dispatch(r, start.Name.Local, xmlParams{dec: dec, start: start})
	if flt != nil {
		h.writeSOAPFault(w, r, flt)
		return
	}
	h.writeSOAPResult(w, r, start.Name.Local, result)
}

// soapOperation advances the decoder to the first element inside Body and
// returns it. Matching is by local name, so <soap:Body> and <Body> both
// work regardless of the prefix the caller chose.
func soapOperation(dec *xml.Decoder) (xml.StartElement, error) {
	inBody := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, errors.New("request contains no envelope body")
			}
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if inBody {
				return t, nil
			}
			if t.Name.Local == "Body" {
				inBody = true
			}
		case xml.EndElement:
			if inBody && t.Name.Local == "Body" {
				return xml.StartElement{}, errors.New("envelope body contains no operation element")
			}
		}
	}
}

// writeSOAPResult frames a successful result as <OperationResponse> inside
// the response body. A nil result produces an empty response element.
func (h *Handler) writeSOAPResult(w http.ResponseWriter, r *http.Request, operation string, result any) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	h.writeSOAPBody(w, r, func(enc *xml.Encoder) error {
		response := xml.StartElement{Name: xml.Name{Local: operation + "Response"}}
		if err := enc.EncodeToken(response); err != nil {
			return err
		}
		if result != nil {
			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		return enc.EncodeToken(response.End())
	})
}

// writeSOAPFault frames a fault per the SOAP 1.1 convention: HTTP 500
// regardless of category, with the category reflected in the faultcode and
// the full structured fault under detail.
func (h *Handler) writeSOAPFault(w http.ResponseWriter, r *http.Request, flt *fault.Fault) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	h.writeSOAPBody(w, r, func(enc *xml.Encoder) error {
		return enc.Encode(soapFault{
			Code:   "soap:" + string(flt.Category),
			Reason: flt.Title,
			Detail: soapFaultDetail{Fault: flt},
		})
	})
}

// writeSOAPBody wraps body content in the envelope. Encoding failures are
// logged rather than surfaced: by the time they happen the status line is
// already written.
func (h *Handler) writeSOAPBody(w http.ResponseWriter, r *http.Request, body func(*xml.Encoder) error) {
	envelope := xml.StartElement{
		Name: xml.Name{Local: "soap:Envelope"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:soap"}, Value: soapNamespace}},
	}
	soapBody := xml.StartElement{Name: xml.Name{Local: "soap:Body"}}

	err := func() error {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		if err := enc.EncodeToken(envelope); err != nil {
			return err
		}
		if err := enc.EncodeToken(soapBody); err != nil {
			return err
		}
		if err := body(enc); err != nil {
			return err
		}
		if err := enc.EncodeToken(soapBody.End()); err != nil {
			return err
		}
		if err := enc.EncodeToken(envelope.End()); err != nil {
			return err
		}
		return enc.Flush()
	}()
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Error("failed to encode XML response", slog.String("error", err.Error()))
	}
}
