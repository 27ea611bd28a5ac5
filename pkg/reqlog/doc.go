/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package reqlog logs one event per HTTP request.

The same event is written for net/http, echo, and fiber:

	HTTP GET /orders/42 responded 200 in 0.8312 ms

with the properties RequestMethod, RequestPath, StatusCode, Elapsed (ms), RequestId and SourceContext=reqlog.
Requests that fail with a server error, or whose handler returns an error, are logged at error level, all others at
info level.

The request id is taken from the X-Request-Id header, or generated, and is echoed back on the response. The request
context carries a logger tagged with the RequestId, which is retrieved via zerolog.Ctx, and the RequestId log context
property (see logcfg.FromLogContext).
*/
package reqlog
