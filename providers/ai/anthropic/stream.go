package anthropic

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/observability"
)

// StreamCompletion implements [ai.Provider] for Anthropic's Messages API.
// It sends a streaming request (stream=true) and returns a stream of text
// fragments decoded from the SSE events as they arrive.
//
// Pre-network failures (missing API key, serialization, bad URL) and the
// status-line mapping are returned immediately as a non-nil error; after
// streaming begins, the single terminal signal travels through the stream.
func (provider *AnthropicProvider) StreamCompletion(ctx context.Context, request ai.CompletionRequest) (*ai.CompletionStream, error) {
	observer := observability.ObserverFromContext(ctx)

	// Capture the credential once; a concurrent rotation affects only the
	// next call, never this one.
	apiKey := provider.currentAPIKey()
	if apiKey == "" {
		return nil, ai.NewError(ai.ErrInvalidCredential, "ANTHROPIC_API_KEY is not set")
	}

	if observer != nil {
		observer.Trace(ctx, "anthropic provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "anthropic"),
			observability.String(observability.AttrLLMEndpoint, provider.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrMessagesCount, len(request.Messages)),
		)
	}

	streamURL := provider.baseURL + messagesEndpoint
	anthropicReq := requestToAnthropic(request)

	// Empty apiKey argument so DoPostStream does not inject a Bearer token;
	// Anthropic authenticates via x-api-key inside buildHeaders.
	httpResponse, err := utils.DoPostStream(ctx, provider.client, streamURL, "", anthropicReq, buildHeaders(apiKey)...)
	if err != nil {
		classified := ai.ClassifyRequestError(ctx, err)
		if observer != nil {
			observer.Warn(ctx, "anthropic streaming request failed", observability.Error(classified))
		}
		return nil, classified
	}

	streamCtx, cancel := context.WithCancel(ctx)
	producer := ai.NewStreamProducer(streamCtx)
	go provider.readLoop(streamCtx, httpResponse.Body, producer, observer)

	return producer.Stream(cancel), nil
}

// readLoop decodes the SSE body into text fragments until a terminal
// condition: message_stop or end of input (success), a provider error event,
// a transport failure, or cancellation. One malformed frame never aborts the
// stream; it is logged and skipped.
func (provider *AnthropicProvider) readLoop(ctx context.Context, body io.ReadCloser, producer *ai.StreamProducer, observer observability.Observer) {
	defer producer.Close()
	defer utils.CloseWithLog(body)

	scanner := utils.NewSSEScanner(body)
	start := time.Now()

	// accumulated mirrors the emitted text for diagnostics only; it is never
	// surfaced as a whole.
	var accumulated strings.Builder
	fragments := 0

	emit := func(text string) bool {
		if !producer.Text(text) {
			producer.Fail(ai.Cancelled(ctx))
			return false
		}
		accumulated.WriteString(text)
		fragments++
		return true
	}

	logCompletion := func() {
		if observer != nil {
			observer.Trace(ctx, "anthropic stream completed",
				observability.Int(observability.AttrFragmentsEmitted, fragments),
				observability.Int(observability.AttrCharsEmitted, accumulated.Len()),
				observability.Duration("llm.stream.duration", time.Since(start)),
			)
		}
	}

	for {
		// Cancellation is observed within one read iteration.
		if ctx.Err() != nil {
			producer.Fail(ai.Cancelled(ctx))
			return
		}

		payload, sseErr := scanner.Next()
		if sseErr == io.EOF {
			// Natural end of input terminates the sequence successfully even
			// without an explicit message_stop.
			logCompletion()
			return
		}
		if sseErr != nil {
			if ctx.Err() != nil {
				producer.Fail(ai.Cancelled(ctx))
			} else {
				producer.Fail(ai.NewError(ai.ErrNetwork, sseErr.Error()))
			}
			return
		}

		event, parseErr := unmarshalStreamEvent(payload)
		if parseErr != nil {
			// One bad frame from a flaky provider must not kill a
			// multi-second generation.
			if observer != nil {
				observer.Warn(ctx, "skipping malformed stream frame",
					observability.String(observability.AttrFramePayload, observability.Redact(utils.TruncateString(payload, 200))),
					observability.Error(parseErr),
				)
			}
			continue
		}

		switch event.Type {

		case "message_start":
			// A new message resets the diagnostic accumulation buffer.
			accumulated.Reset()
			fragments = 0

		case "content_block_delta":
			if event.Delta == nil || event.Delta.Type != "text_delta" || event.Delta.Text == "" {
				continue
			}
			if !emit(event.Delta.Text) {
				return
			}

		case "message_delta":
			// Secondary delta channel: when it carries trailing text, emit it
			// exactly like a primary content delta.
			if event.Delta != nil && event.Delta.Text != "" {
				if !emit(event.Delta.Text) {
					return
				}
			}

		case "message_stop":
			// Terminal event; any frames that follow are ignored.
			logCompletion()
			return

		case "error":
			message := "unknown stream error"
			if event.Error != nil && event.Error.Message != "" {
				message = event.Error.Message
			}
			producer.Fail(ai.NewError(ai.ErrServer, message))
			return

		case "ping", "content_block_start", "content_block_stop":
			// Keep-alives and block bookkeeping carry no text.

		default:
			// Unknown event types are skipped for forward compatibility.
		}
	}
}
