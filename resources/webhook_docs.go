package resources

const webhookDocs = "# Spline Webhook Documentation\n\n" +
	"## What are Webhooks?\n\n" +
	"Webhooks in Spline allow your 3D scenes to receive real-time data from external systems. " +
	"They act as \"listeners\" that wait for incoming data and then update your scene accordingly.\n\n" +
	"## How Webhooks Work in Spline\n\n" +
	"1. **Create a webhook** in Spline with specified variables\n" +
	"2. Spline generates a **unique URL** for your webhook\n" +
	"3. **Configure external systems** to send data to this URL\n" +
	"4. When data is received, Spline **updates the variables** in your scene\n" +
	"5. Your scene can react to these changes via **Variable Change Events**\n\n" +
	"## Common Use Cases\n\n" +
	"- Real-time data visualizations\n" +
	"- IoT device integration\n" +
	"- User interaction tracking\n" +
	"- Multi-user experiences\n" +
	"- Live updates from databases or APIs\n\n" +
	"## Working with Webhooks\n\n" +
	"Use the `createWebhook` tool to create a new webhook, then set up your external system to send " +
	"data to the generated URL. The data should be a JSON object with keys matching your defined variables.\n\n" +
	"## Examples\n\n" +
	"- Weather data visualization (temperature, humidity)\n" +
	"- Stock market trackers\n" +
	"- Social media engagement metrics\n" +
	"- Live sports scores\n" +
	"- IoT sensor readings\n" +
	"- Multi-user collaborative environments\n"
