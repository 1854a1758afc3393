package metrics

const Namespace = "downloads_dashboard"
