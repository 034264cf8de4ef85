// Package frontend provides the server-rendered chat page.
//
// The page works without JavaScript: prompts, ratings and clears are plain
// form posts that redirect back to the chat. With JavaScript enabled, the
// embedded app.js streams replies through the API's SSE endpoint and
// repaints the pending reply as it grows. Tailwind CSS is loaded via CDN.
//
// # Routes
//
//   - GET / - Chat page (welcome, messages, language picker, thread id)
//   - POST /chat/send - Send a prompt and wait for the full reply
//   - POST /chat/clear - Start a new thread
//   - POST /chat/feedback - Rate a reply (run_id, score 0-4)
//   - GET /chat/artifact - Structured artifact of the latest reply
//   - POST /language - Pick the reply language
//   - GET /static/* - Embedded static files (JS, CSS)
package frontend
